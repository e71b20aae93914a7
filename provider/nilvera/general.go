package nilvera

import (
	"context"
	"fmt"

	"github.com/afea/einvoice/gateway"
	"github.com/afea/einvoice/provider"
)

const creditsPath = "/general/Credits"

// GeneralClient groups account-level endpoints.
type GeneralClient struct {
	gw *gateway.Gateway
}

// Credit returns the credits query.
func (g *GeneralClient) Credit() *CreditQuery {
	return &CreditQuery{gw: g.gw}
}

// CreditQuery lists the account's credit packages.
type CreditQuery struct {
	gw *gateway.Gateway
}

// Credit is one credit package exactly as Nilvera returns it.
type Credit map[string]any

// Get returns the value under key, trying the lowercase then the capitalized spelling.
func (c Credit) Get(key string) (any, bool) {
	return gateway.Lookup(c, key)
}

// Int64 returns the value under key as an integer, 0 when missing.
func (c Credit) Int64(key string) int64 {
	return provider.Int64(c, key)
}

// Text returns the value under key as text, "" when missing.
func (c Credit) Text(key string) string {
	return provider.String(c, key)
}

// CreditList is the account's credit packages.
type CreditList struct {
	Credits []Credit `json:"credits"`
}

// Len returns the number of credit packages.
func (l *CreditList) Len() int { return len(l.Credits) }

// Get fetches the credit list. A single object response is returned as one entry.
func (q *CreditQuery) Get(ctx context.Context) (*CreditList, error) {
	resp, err := q.gw.Get(ctx, creditsPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return creditListFrom(resp)
}

func creditListFrom(resp *gateway.Response) (*CreditList, error) {
	objs, err := provider.Objects(resp)
	if err != nil {
		return nil, fmt.Errorf("nilvera: credits: %w", err)
	}
	list := &CreditList{Credits: make([]Credit, 0, len(objs))}
	for _, o := range objs {
		list.Credits = append(list.Credits, Credit(o))
	}
	return list, nil
}
