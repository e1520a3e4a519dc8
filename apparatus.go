package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// 2次側の流れの代表温度
type StreamTemp string

const (
	StreamTempInlet  StreamTemp = "inlet"  // 1次側入口温度
	StreamTempOutlet StreamTemp = "outlet" // 1次側出口温度
)

// 2次側の流れ
type SecondaryStream struct {
	Velocity    string     `yaml:"velocity"`
	Temperature StreamTemp `yaml:"temperature"`
	Output      string     `yaml:"output"`
}

// 装置種別ごとのシートの列構成
type ApparatusProfile struct {
	Name             string            `yaml:"name"`
	SkipRows         int               `yaml:"skip_rows"`
	Columns          string            `yaml:"columns"`
	TempIn           string            `yaml:"temp_in"`
	TempOut          string            `yaml:"temp_out"`
	Humidity         string            `yaml:"humidity"`
	Velocity         string            `yaml:"velocity"`
	ChannelHeight    string            `yaml:"channel_height"`
	WWR              string            `yaml:"wwr"`
	EpsilonWB        string            `yaml:"epsilon_wb"`
	Re               string            `yaml:"re"`
	Nu               string            `yaml:"nu"`
	HeatTransferCoef string            `yaml:"heat_transfer_coef"`
	Secondary        []SecondaryStream `yaml:"secondary"`
}

// 1次側の出口温度が必要か否か
func (p *ApparatusProfile) needs_outlet(mode AnalysisMode) bool {
	if mode == PreTreatment {
		return true
	}
	for _, s := range p.Secondary {
		if s.Temperature == StreamTempOutlet {
			return true
		}
	}
	return false
}

func (p *ApparatusProfile) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: profile without name", ErrUnsupportedConfig)
	}
	if p.SkipRows < 0 {
		return fmt.Errorf("%w: profile %q: negative skip_rows", ErrUnsupportedConfig, p.Name)
	}
	if _, _, err := parse_column_range(p.Columns); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	required := map[string]string{
		"temp_in":            p.TempIn,
		"humidity":           p.Humidity,
		"velocity":           p.Velocity,
		"channel_height":     p.ChannelHeight,
		"wwr":                p.WWR,
		"re":                 p.Re,
		"nu":                 p.Nu,
		"heat_transfer_coef": p.HeatTransferCoef,
	}
	for key, v := range required {
		if v == "" {
			return fmt.Errorf("%w: profile %q: %s is empty", ErrUnsupportedConfig, p.Name, key)
		}
	}
	for i, s := range p.Secondary {
		if s.Velocity == "" || s.Output == "" {
			return fmt.Errorf("%w: profile %q: secondary stream %d is incomplete", ErrUnsupportedConfig, p.Name, i+1)
		}
		if s.Temperature != StreamTempInlet && s.Temperature != StreamTempOutlet {
			return fmt.Errorf("%w: profile %q: secondary stream %d: temperature %q", ErrUnsupportedConfig, p.Name, i+1, s.Temperature)
		}
	}
	if p.needs_outlet(HeatTransfer) && p.TempOut == "" {
		return fmt.Errorf("%w: profile %q: temp_out is empty", ErrUnsupportedConfig, p.Name)
	}
	return nil
}

// 装置種別の一覧
type Profiles map[string]*ApparatusProfile

// 直接蒸発冷却器
var profile_dec = ApparatusProfile{
	Name:             "DEC",
	SkipRows:         28,
	Columns:          "B:R",
	TempIn:           "T_pwi",
	TempOut:          "T_pwo",
	Humidity:         "w_pwi",
	Velocity:         "v_pwi",
	ChannelHeight:    "h_ch",
	WWR:              "WWR",
	EpsilonWB:        "epsilon_wb",
	Re:               "Re",
	Nu:               "Nu",
	HeatTransferCoef: "h_T",
}

// 2段蒸発冷却器
// 1段目（IEC）の2次側は1次側入口温度、2段目（D-IEC）の2次側は1次側出口温度で評価する。
// 絶対湿度はどちらも1次側入口の値を用いる。
var profile_two_stage_ec = ApparatusProfile{
	Name:             "Two-stage_EC",
	SkipRows:         32,
	Columns:          "B:AF",
	TempIn:           "T_pdi",
	TempOut:          "T_pdo",
	Humidity:         "w_pdi",
	Velocity:         "v_pdi",
	ChannelHeight:    "h_ch",
	WWR:              "WWR",
	EpsilonWB:        "epsilon_wb",
	Re:               "Re",
	Nu:               "Nu",
	HeatTransferCoef: "h_T_pd",
	Secondary: []SecondaryStream{
		{Velocity: "v_swi_1", Temperature: StreamTempInlet, Output: "h_T_sw_1"},
		{Velocity: "v_swi_2", Temperature: StreamTempOutlet, Output: "h_T_sw_2"},
	},
}

// 既定の装置種別
func default_profiles() Profiles {
	dec := profile_dec
	two := profile_two_stage_ec
	two.Secondary = append([]SecondaryStream(nil), profile_two_stage_ec.Secondary...)
	return Profiles{
		dec.Name: &dec,
		two.Name: &two,
	}
}

// 装置種別を引く。
func (ps Profiles) lookup(hex_type string) (*ApparatusProfile, error) {
	p, ok := ps[hex_type]
	if !ok {
		return nil, fmt.Errorf("%w: HEX type %q (known: %v)", ErrUnsupportedConfig, hex_type, ps.names())
	}
	return p, nil
}

func (ps Profiles) names() []string {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type profiles_file struct {
	Profiles []ApparatusProfile `yaml:"profiles"`
}

/*
装置種別の定義ファイルを読み込む。

	Args:
	    path: yaml ファイルのパス

	Returns:
	    既定の装置種別に定義ファイルの内容を上書きしたもの
*/
func LoadProfiles(path string) (Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	return parse_profiles(data)
}

func parse_profiles(data []byte) (Profiles, error) {
	var pf profiles_file
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}

	ps := default_profiles()
	for i := range pf.Profiles {
		p := pf.Profiles[i]
		if err := p.validate(); err != nil {
			return nil, err
		}
		ps[p.Name] = &p
	}
	return ps, nil
}
