package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

/*
列範囲の文字列を列番号の組に変換する。

	Args:
	    columns: 列範囲, 例: "B:R"

	Returns:
	    以下のタプル
	        (1) 先頭の列番号（1始まり）
	        (2) 末尾の列番号（1始まり）
*/
func parse_column_range(columns string) (int, int, error) {
	parts := strings.Split(columns, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: invalid column range %q", ErrUnsupportedConfig, columns)
	}
	first, err := excelize.ColumnNameToNumber(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid column range %q: %v", ErrUnsupportedConfig, columns, err)
	}
	last, err := excelize.ColumnNameToNumber(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid column range %q: %v", ErrUnsupportedConfig, columns, err)
	}
	if last <= first {
		return 0, 0, fmt.Errorf("%w: column range %q has no data columns", ErrUnsupportedConfig, columns)
	}
	return first, last, nil
}

func sheet_exists(f *excelize.File, sheet string) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheet, f.Path)
	}
	return nil
}

/*
ブックのシートから表を読み込む。

	Args:
	    path: ブックのパス
	    sheet: シート名
	    columns: 読み込む列範囲, 先頭列はインデックス
	    skip_rows: 見出し行より前に読み飛ばす行数

	Returns:
	    表

	Notes:
	    空の行は読み飛ばすが、各レコードの行番号は保持する。
	    見出しが空の列は "Unnamed: k" とする。
*/
func read_table(path, sheet, columns string, skip_rows int) (*Table, error) {
	first, last, err := parse_column_range(columns)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := sheet_exists(f, sheet); err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) <= skip_rows {
		return nil, fmt.Errorf("%w: sheet %q has no header row at row %d", ErrColumnNotFound, sheet, skip_rows+1)
	}

	cell := func(r, c int) string {
		if c-1 < len(rows[r]) {
			return strings.TrimSpace(rows[r][c-1])
		}
		return ""
	}

	// 値の入っている最後の列
	used := first
	for r := skip_rows; r < len(rows); r++ {
		for c := last; c > used; c-- {
			if cell(r, c) != "" {
				used = c
				break
			}
		}
	}

	// 値の入っている行
	data_rows := make([]int, 0, len(rows)-skip_rows-1)
	for r := skip_rows + 1; r < len(rows); r++ {
		for c := first; c <= used; c++ {
			if cell(r, c) != "" {
				data_rows = append(data_rows, r)
				break
			}
		}
	}

	index := make([]string, len(data_rows))
	for i, r := range data_rows {
		index[i] = cell(r, first)
	}

	t := NewTable(cell(skip_rows, first), index)
	t.header = skip_rows + 1
	t.index_col = first
	t.rows = make([]int, len(data_rows))
	for i, r := range data_rows {
		t.rows[i] = r + 1
	}

	seen := map[string]int{}
	for c := first + 1; c <= used; c++ {
		name := cell(skip_rows, c)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", c-first)
		}
		if k, ok := seen[name]; ok {
			seen[name] = k + 1
			name = fmt.Sprintf("%s.%d", name, k)
		} else {
			seen[name] = 1
		}

		values := make([]float64, len(data_rows))
		var raw []string
		for i, r := range data_rows {
			s := cell(r, c)
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				v = math.NaN()
				if s != "" {
					if raw == nil {
						raw = make([]string, len(data_rows))
					}
					raw[i] = s
				}
			}
			values[i] = v
		}
		t.add_source_column(name, c, values, raw)
	}

	log.WithFields(log.Fields{
		"path":    path,
		"sheet":   sheet,
		"rows":    t.Len(),
		"columns": len(t.columns),
	}).Debug("table read")

	return t, nil
}

/*
解析で設定した列をシートに重ね書きする。

	Args:
	    path: ブックのパス
	    sheet: シート名
	    t: 表

	Notes:
	    書き込むのは解析で設定した列の見出しと値のみで、他のシートやセルはそのまま残す。
	    新しい列は既存の最後の列の右に並べる。
	    同じディレクトリの一時ファイルに保存してから置き換える。
*/
func write_table(path, sheet string, t *Table) (err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := sheet_exists(f, sheet); err != nil {
		return err
	}

	next := t.index_col + 1
	for _, c := range t.columns {
		if c.col >= next {
			next = c.col + 1
		}
	}

	n_written := 0
	for _, c := range t.columns {
		if !c.dirty {
			continue
		}
		if c.col == 0 {
			c.col = next
			next++
		}

		name, err := excelize.CoordinatesToCellName(c.col, t.header)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, name, c.Name); err != nil {
			return err
		}

		for i, r := range t.rows {
			name, err := excelize.CoordinatesToCellName(c.col, r)
			if err != nil {
				return err
			}
			if v := c.cell(i); v != nil {
				err = f.SetCellValue(sheet, name, v)
			} else {
				err = f.SetCellDefault(sheet, name, "")
			}
			if err != nil {
				return err
			}
		}
		n_written++
	}

	if err := save_replace(f, path); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"path":    path,
		"sheet":   sheet,
		"columns": n_written,
	}).Info("table written")

	return nil
}

/*
一時ファイルに書き出してから path を置き換える。

	Notes:
	    path がシンボリックリンクの場合はリンク先を置き換える。
	    置き換え後も元のファイルのパーミッションを保つ。
*/
func save_replace(f *excelize.File, path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return err
	}
	st, err := os.Stat(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}
	tmp_path := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmp_path)
		return err
	}

	if _, err := f.WriteTo(tmp); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(st.Mode().Perm()); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp_path)
		return err
	}
	if err := os.Rename(tmp_path, target); err != nil {
		os.Remove(tmp_path)
		return err
	}
	return nil
}
