package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid    = errors.New("Invalid parameters")
	ErrCommentRequired = errors.New("Name and Content are required")
	ErrSlugExists      = errors.New("오류: 이미 존재하는 URL 슬러그입니다. 다른 슬러그를 사용해주세요.")
	ErrPostNotFound    = errors.New("Post not found")
	UnauthorizedError  = errors.New("Unauthorized")
	UnExpectedError    = errors.New("Internal Server Error")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:    BadRequest,
	ErrCommentRequired: BadRequest,
	ErrSlugExists:      BadRequest,
	ErrPostNotFound:    NotFound,
	UnauthorizedError:  Unauthorized,
	UnExpectedError:    InternalServerError,
}

// StatusOf 按 ErrorMap 匹配错误链，未知错误返回 500
func StatusOf(err error) (int, bool) {
	if code, ok := ErrorMap[err]; ok {
		return code, true
	}
	for sentinel, code := range ErrorMap {
		if errors.Is(err, sentinel) {
			return code, true
		}
	}
	return InternalServerError, false
}
