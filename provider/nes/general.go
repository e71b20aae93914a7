package nes

import (
	"context"
	"fmt"

	"github.com/afea/einvoice/gateway"
	"github.com/afea/einvoice/provider"
)

const creditSummaryPath = "/general/v1/management/creditsummary"

// GeneralClient groups account-level endpoints.
type GeneralClient struct {
	gw *gateway.Gateway
}

// Credit returns the credit summary query.
func (g *GeneralClient) Credit() *CreditQuery {
	return &CreditQuery{gw: g.gw}
}

// CreditQuery reads the account's credit summary.
type CreditQuery struct {
	gw *gateway.Gateway
}

// CreditSummary is the account's e-document credit balance.
type CreditSummary struct {
	TotalDefinedCount       int64 `json:"totalDefinedCount"`
	TotalUsedCount          int64 `json:"totalUsedCount"`
	TotalExpiredUnUsedCount int64 `json:"totalExpiredUnUsedCount"`
}

// Remaining returns the credits still usable, never below zero.
func (s *CreditSummary) Remaining() int64 {
	r := s.TotalDefinedCount - s.TotalUsedCount - s.TotalExpiredUnUsedCount
	if r < 0 {
		return 0
	}
	return r
}

// Get fetches the credit summary. Missing fields are reported as zero.
func (q *CreditQuery) Get(ctx context.Context) (*CreditSummary, error) {
	resp, err := q.gw.Get(ctx, creditSummaryPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return creditSummaryFrom(resp)
}

func creditSummaryFrom(resp *gateway.Response) (*CreditSummary, error) {
	m, err := provider.Object(resp)
	if err != nil {
		return nil, fmt.Errorf("nes: credit summary: %w", err)
	}
	return &CreditSummary{
		TotalDefinedCount:       provider.Int64(m, "totalDefinedCount"),
		TotalUsedCount:          provider.Int64(m, "totalUsedCount"),
		TotalExpiredUnUsedCount: provider.Int64(m, "totalExpiredUnUsedCount"),
	}, nil
}
