package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"
)

// 計算結果の1列
type recorded_column struct {
	name   string
	stream string
	values []float64
}

// 解析で得られた列を集め、表への反映と CSV 出力を行う。
type Recorder struct {
	hex_type string
	index    []string
	columns  []*recorded_column
}

func NewRecorder(hex_type string, index []string) *Recorder {
	return &Recorder{hex_type: hex_type, index: index}
}

func (r *Recorder) add(name, stream string, values []float64) error {
	if len(values) != len(r.index) {
		return fmt.Errorf("%w: %s has %d rows, expected %d", ErrShapeMismatch, name, len(values), len(r.index))
	}
	for _, c := range r.columns {
		if c.name == name {
			c.stream, c.values = stream, values
			return nil
		}
	}
	r.columns = append(r.columns, &recorded_column{name: name, stream: stream, values: values})
	return nil
}

// 入口絶対湿度を記録する。
func (r *Recorder) record_humidity(name string, x_ns []float64) error {
	return r.add(name, "primary", x_ns)
}

// 1次側のレイノルズ数、ヌセルト数、対流熱伝達率を記録する。
func (r *Recorder) record_primary(p *ApparatusProfile, coef *HeatTransferCoef) error {
	if err := r.add(p.Re, "primary", coef.Re); err != nil {
		return err
	}
	if err := r.add(p.Nu, "primary", coef.Nu); err != nil {
		return err
	}
	return r.add(p.HeatTransferCoef, "primary", coef.H_T)
}

// 2次側は対流熱伝達率のみ記録する。
func (r *Recorder) record_secondary(s SecondaryStream, coef *HeatTransferCoef) error {
	return r.add(s.Output, s.Velocity, coef.H_T)
}

// 記録した列名
func (r *Recorder) names() []string {
	names := make([]string, len(r.columns))
	for i, c := range r.columns {
		names[i] = c.name
	}
	return names
}

// 記録した列を表に設定する。
func (r *Recorder) apply(t *Table) error {
	for _, c := range r.columns {
		if err := t.SetColumn(c.name, c.values); err != nil {
			return err
		}
	}
	return nil
}

// CSV の数値セル
// NaN は空欄とする。
type csv_float float64

func (f csv_float) MarshalCSV() (string, error) {
	if math.IsNaN(float64(f)) {
		return "", nil
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 64), nil
}

func (f *csv_float) UnmarshalCSV(s string) error {
	if s == "" {
		*f = csv_float(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = csv_float(v)
	return nil
}

// 計算結果の CSV の1行（縦持ち）
type ResultRow struct {
	HEXType string    `csv:"hex_type"`
	Index   string    `csv:"index"`
	Stream  string    `csv:"stream"`
	Column  string    `csv:"column"`
	Value   csv_float `csv:"value"`
}

func (r *Recorder) rows() []*ResultRow {
	rows := make([]*ResultRow, 0, len(r.index)*len(r.columns))
	for i, idx := range r.index {
		for _, c := range r.columns {
			rows = append(rows, &ResultRow{
				HEXType: r.hex_type,
				Index:   idx,
				Stream:  c.stream,
				Column:  c.name,
				Value:   csv_float(c.values[i]),
			})
		}
	}
	return rows
}

// 計算結果を CSV に保存する。
func (r *Recorder) save_csv(path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	return gocsv.MarshalFile(r.rows(), file)
}

// 保存した CSV を読み込む。
func load_result_csv(path string) ([]*ResultRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []*ResultRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
