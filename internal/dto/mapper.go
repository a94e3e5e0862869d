package dto

import (
	"keyword-match-service/internal/domain"
	"keyword-match-service/internal/matcher"
)

func ToMatchResponse(res *domain.MatchResult) MatchResponse {
	return MatchResponse{
		Matched:   res.Matched,
		Filter:    res.Filter,
		Version:   res.Version,
		Origin:    string(res.Origin),
		ExpiresAt: res.ExpiresAt,
	}
}

func ToSetInfoResponse(info matcher.SetInfo) SetInfoResponse {
	return SetInfoResponse{
		CacheKey:     info.CacheKey,
		Origin:       string(info.Origin),
		KeywordCount: info.KeywordCount,
		FetchedAt:    info.FetchedAt,
		ExpiresAt:    info.ExpiresAt,
	}
}

func ToMatchRecordResponse(rec *domain.MatchRecord) MatchRecordResponse {
	return MatchRecordResponse{
		ID:         rec.ID.String(),
		CreatedAt:  rec.CreatedAt,
		Filter:     rec.Filter,
		Version:    rec.Version,
		Matched:    rec.Matched,
		Origin:     string(rec.Origin),
		DurationMS: rec.DurationMS,
	}
}
