// 指示: miu200521358
// Package io_common は入出力アダプタ共通のエラー型を提供する。
package io_common

import "fmt"

// IoErrorKind は入出力エラーの種別を表す。
type IoErrorKind string

const (
	// IoErrorKindExtInvalid は拡張子不一致。
	IoErrorKindExtInvalid IoErrorKind = "ext_invalid"
	// IoErrorKindFileNotFound はファイル未検出。
	IoErrorKindFileNotFound IoErrorKind = "file_not_found"
	// IoErrorKindParseFailed は解析失敗。
	IoErrorKindParseFailed IoErrorKind = "parse_failed"
	// IoErrorKindWriteFailed は書き込み失敗。
	IoErrorKindWriteFailed IoErrorKind = "write_failed"
)

// IoError は入出力アダプタのエラーを表す。
type IoError struct {
	Kind    IoErrorKind
	Path    string
	message string
	cause   error
}

// Error はエラーメッセージを返す。
func (e *IoError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.message, e.Path)
	}
	return e.message
}

// Unwrap は原因エラーを返す。
func (e *IoError) Unwrap() error {
	return e.cause
}

// NewIoExtInvalid は拡張子不一致エラーを生成する。
func NewIoExtInvalid(path string, cause error) *IoError {
	return &IoError{Kind: IoErrorKindExtInvalid, Path: path, message: "対応していない拡張子です", cause: cause}
}

// NewIoFileNotFound はファイル未検出エラーを生成する。
func NewIoFileNotFound(path string, cause error) *IoError {
	return &IoError{Kind: IoErrorKindFileNotFound, Path: path, message: "ファイルが見つかりません", cause: cause}
}

// NewIoParseFailed は解析失敗エラーを生成する。
func NewIoParseFailed(format string, cause error, args ...any) *IoError {
	return &IoError{Kind: IoErrorKindParseFailed, message: fmt.Sprintf(format, args...), cause: cause}
}

// NewIoWriteFailed は書き込み失敗エラーを生成する。
func NewIoWriteFailed(format string, cause error, args ...any) *IoError {
	return &IoError{Kind: IoErrorKindWriteFailed, message: fmt.Sprintf(format, args...), cause: cause}
}
