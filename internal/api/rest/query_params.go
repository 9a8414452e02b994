package rest

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ListOpportunitiesQueryParams holds query parameters for GET /opportunities
type ListOpportunitiesQueryParams struct {
	Wallet          string `form:"wallet"`
	IncludeUnranked bool   `form:"include_unranked,default=false"`
}

// WalletPtr returns the wallet or nil when none was given
func (p *ListOpportunitiesQueryParams) WalletPtr() *string {
	if p.Wallet == "" {
		return nil
	}
	return &p.Wallet
}

// ParseListOpportunitiesQuery parses query parameters for GET /opportunities
func ParseListOpportunitiesQuery(c *gin.Context) (*ListOpportunitiesQueryParams, error) {
	var params ListOpportunitiesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	params.Wallet = strings.TrimSpace(params.Wallet)
	return &params, nil
}
