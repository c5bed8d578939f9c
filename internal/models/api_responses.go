package models

import "encoding/json"

// User-facing messages of the search API.
const (
	MessageNoResults          = "검색 결과가 없습니다."
	MessageKeywordRequired    = "키워드를 입력해주세요."
	MessageKeywordTooLong     = "키워드가 너무 깁니다."
	MessageMethodNotAllowed   = "Method not allowed"
	MessageStoreMisconfigured = "데이터 저장소 설정이 누락되었습니다."
	MessageSearchFailed       = "검색 중 오류가 발생했습니다."
	MessageServerError        = "서버 오류가 발생했습니다."
)

// SearchResponse is returned when a category could be recommended, either
// from the keyword mapping or from a content search.
type SearchResponse struct {
	Keyword          string         `json:"keyword"`
	TotalResults     int            `json:"totalResults"`
	RecommendedField string         `json:"recommendedField"`
	RecommendedCount int            `json:"recommendedCount"`
	AllFields        json.Marshaler `json:"allFields"`
	MappingUsed      bool           `json:"mappingUsed"`
}

// NoResultResponse is returned when no complaint matched the keyword.
// RecommendedField is always null.
type NoResultResponse struct {
	Keyword          string  `json:"keyword"`
	TotalResults     int     `json:"totalResults"`
	RecommendedField *string `json:"recommendedField"`
	Message          string  `json:"message"`
	MappingUsed      bool    `json:"mappingUsed"`
}

// ErrorResponse carries a user-facing error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
