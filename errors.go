package main

import (
	"errors"
	"fmt"
)

var (
	// 装置種別または解析モードが未対応
	ErrUnsupportedConfig = errors.New("unsupported configuration")

	// 湿り空気の状態が熱力学的に成立しない
	ErrInfeasibleState = errors.New("infeasible moist air state")

	// 必要な列がシートに存在しない
	ErrColumnNotFound = errors.New("column not found")

	// 配列の長さが揃っていない
	ErrShapeMismatch = errors.New("array length mismatch")

	// 指定したシートがブックに存在しない
	ErrSheetNotFound = errors.New("sheet not found")
)

// 失敗した処理段階
type Stage string

const (
	StageConfiguration    Stage = "configuration"
	StageRead             Stage = "read"
	StageColumnResolution Stage = "column resolution"
	StagePropertyLookup   Stage = "property lookup"
	StageWriteBack        Stage = "write-back"
	StageExport           Stage = "export"
)

// 失敗した処理段階とその原因
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stage_error(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
