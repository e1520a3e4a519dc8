package main

import (
	"fmt"
	"math"
)

// シートの1列
type Column struct {
	Name   string
	Values []float64
	raw    []string // 数値として読めなかったセルの元の文字列
	col    int      // シート上の列番号（1始まり）、新規列は 0
	dirty  bool     // 解析で書き換えた列
}

// シートから読み込んだ表
// 先頭列をインデックスとし、残りを名前付きの数値列として保持する。
type Table struct {
	IndexName string
	Index     []string
	rows      []int // 各レコードのシート上の行番号（1始まり）
	index_col int
	header    int // 見出し行の行番号（1始まり）
	columns   []*Column
	by_name   map[string]*Column
}

func NewTable(index_name string, index []string) *Table {
	return &Table{
		IndexName: index_name,
		Index:     index,
		by_name:   map[string]*Column{},
	}
}

// レコード数
func (t *Table) Len() int {
	return len(t.Index)
}

// 列名の一覧（インデックス列を除く）
func (t *Table) Columns() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

func (t *Table) Has(name string) bool {
	_, ok := t.by_name[name]
	return ok
}

// 列の値を返す。
func (t *Table) Column(name string) ([]float64, error) {
	c, ok := t.by_name[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return c.Values, nil
}

// 複数の列をまとめて取り出す。
func (t *Table) require(names ...string) (map[string][]float64, error) {
	ret := make(map[string][]float64, len(names))
	for _, name := range names {
		v, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		ret[name] = v
	}
	return ret, nil
}

// 列を追加する。同名の列があれば同じ位置で上書きする。
func (t *Table) SetColumn(name string, values []float64) error {
	if len(values) != t.Len() {
		return fmt.Errorf("%w: column %q has %d rows, table has %d", ErrShapeMismatch, name, len(values), t.Len())
	}
	v := make([]float64, len(values))
	copy(v, values)

	if c, ok := t.by_name[name]; ok {
		c.Values = v
		c.raw = nil
		c.dirty = true
		return nil
	}

	c := &Column{Name: name, Values: v, dirty: true}
	t.columns = append(t.columns, c)
	t.by_name[name] = c
	return nil
}

// 全ての行に同じ値を持つ列を設定する。
func (t *Table) SetScalar(name string, value float64) error {
	v := make([]float64, t.Len())
	for i := range v {
		v[i] = value
	}
	return t.SetColumn(name, v)
}

// 読み込んだ列を登録する。
func (t *Table) add_source_column(name string, col int, values []float64, raw []string) {
	c := &Column{Name: name, Values: values, raw: raw, col: col}
	t.columns = append(t.columns, c)
	t.by_name[name] = c
}

// セルの値を書き戻し用の値に変換する。
// 数値として読めなかったセルは元の文字列を返し、空セルは nil を返す。
func (c *Column) cell(i int) interface{} {
	if c.raw != nil && c.raw[i] != "" {
		return c.raw[i]
	}
	if math.IsNaN(c.Values[i]) || math.IsInf(c.Values[i], 0) {
		return nil
	}
	return c.Values[i]
}
