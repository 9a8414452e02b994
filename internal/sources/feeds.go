package sources

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/providers/vendors/defillama"
	"github.com/feral-file/ff-opportunities/internal/providers/vendors/galxe"
	"github.com/feral-file/ff-opportunities/internal/providers/vendors/layer3"
	"github.com/feral-file/ff-opportunities/internal/registry"
)

const (
	feedPageSize = 50
	maxYieldPools = 500
)

type defiLlamaFeed struct {
	client defillama.Client
	minTVL float64
}

// NewDefiLlamaFeed maps yield pools with at least minTVL USD locked, largest first
func NewDefiLlamaFeed(client defillama.Client, minTVL float64) Feed {
	return &defiLlamaFeed{client: client, minTVL: minTVL}
}

func (f *defiLlamaFeed) FetchPage(ctx context.Context, _ string) (Page, error) {
	pools, err := f.client.GetPools(ctx)
	if err != nil {
		return Page{}, err
	}

	pools = slices.DeleteFunc(pools, func(p defillama.Pool) bool { return p.TvlUsd < f.minTVL })
	slices.SortStableFunc(pools, func(a, b defillama.Pool) int { return cmp.Compare(b.TvlUsd, a.TvlUsd) })
	if len(pools) > maxYieldPools {
		pools = pools[:maxYieldPools]
	}

	records := make([]RawRecord, 0, len(pools))
	for _, p := range pools {
		tags := []string{"yield"}
		if p.Stablecoin {
			tags = append(tags, "stablecoin")
		}
		if p.Exposure != "" {
			tags = append(tags, p.Exposure)
		}

		description := fmt.Sprintf("%s on %s", p.Symbol, p.Chain)
		if p.Apy != nil {
			description = fmt.Sprintf("%.2f%% APY for %s on %s", *p.Apy, p.Symbol, p.Chain)
		}

		records = append(records, RawRecord{
			SourceRef:   p.Pool,
			Type:        domain.OpportunityTypeYield,
			Title:       fmt.Sprintf("%s %s", p.Project, p.Symbol),
			Description: description,
			URL:         "https://defillama.com/yields/pool/" + p.Pool,
			Protocol:    p.Project,
			Chains:      []string{p.Chain},
			Tags:        tags,
			Weight:      p.TvlUsd,
			Active:      true,
		})
	}
	return Page{Records: records}, nil
}

type galxeFeed struct {
	client galxe.Client
}

// NewGalxeFeed maps Galxe campaigns, following GraphQL cursors
func NewGalxeFeed(client galxe.Client) Feed {
	return &galxeFeed{client: client}
}

func (f *galxeFeed) FetchPage(ctx context.Context, cursor string) (Page, error) {
	page, err := f.client.GetCampaigns(ctx, cursor, feedPageSize)
	if err != nil {
		return Page{}, err
	}

	records := make([]RawRecord, 0, len(page.Campaigns))
	for _, c := range page.Campaigns {
		protocol := ""
		if c.Space != nil {
			protocol = cmp.Or(c.Space.Name, c.Space.Alias)
		}

		createdAt := unixTime(c.CreatedAt)
		if createdAt == nil {
			createdAt = unixTime(c.StartTime)
		}

		record := RawRecord{
			SourceRef:   c.ID,
			Type:        Classify(c.Name, c.Description, c.Type, strings.Join(c.Tags, " ")),
			Title:       c.Name,
			Description: c.Description,
			URL:         "https://app.galxe.com/quest/" + c.ID,
			Protocol:    protocol,
			Chains:      []string{c.Chain},
			Tags:        c.Tags,
			Weight:      float64(c.ParticipantsCount),
			Active:      strings.EqualFold(c.Status, "active"),
			EndsAt:      unixTime(c.EndTime),
		}
		if createdAt != nil {
			record.CreatedAt = *createdAt
		}
		records = append(records, record)
	}

	next := ""
	if page.HasNextPage && page.EndCursor != "" && page.EndCursor != cursor {
		next = page.EndCursor
	}
	return Page{Records: records, Next: next}, nil
}

type layer3Feed struct {
	client layer3.Client
}

// NewLayer3Feed maps Layer3 quests page by page
func NewLayer3Feed(client layer3.Client) Feed {
	return &layer3Feed{client: client}
}

func (f *layer3Feed) FetchPage(ctx context.Context, cursor string) (Page, error) {
	pageNum := 1
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil {
			return Page{}, fmt.Errorf("invalid layer3 cursor %q: %w", cursor, err)
		}
		pageNum = n
	}

	page, err := f.client.GetQuests(ctx, pageNum, feedPageSize)
	if err != nil {
		return Page{}, err
	}

	records := make([]RawRecord, 0, len(page.Quests))
	for _, q := range page.Quests {
		protocol := ""
		if q.Dapp != nil {
			protocol = cmp.Or(q.Dapp.Name, q.Dapp.Slug)
		}

		var req *domain.Requirements
		if q.Requirements != nil {
			req = &domain.Requirements{
				MinWalletAgeDays: q.Requirements.MinWalletAgeDays,
				MinTxCount:       q.Requirements.MinTxCount,
				RequiredTokens:   q.Requirements.Tokens,
			}
		}

		records = append(records, RawRecord{
			SourceRef:    q.ID,
			Type:         Classify(q.Title, q.Description, strings.Join(q.Tags, " ")),
			Title:        q.Title,
			Description:  q.Description,
			URL:          "https://app.layer3.xyz/quests/" + cmp.Or(q.Slug, q.ID),
			Protocol:     protocol,
			Chains:       q.Chains,
			Tags:         q.Tags,
			Weight:       float64(q.Completions),
			Active:       true,
			CreatedAt:    q.CreatedAt,
			EndsAt:       q.EndsAt,
			SnapshotDate: q.Snapshot,
			Requirements: req,
		})
	}

	next := ""
	if page.HasMore && len(page.Quests) > 0 {
		next = strconv.Itoa(pageNum + 1)
	}
	return Page{Records: records, Next: next}, nil
}

type curatedFeed struct {
	registry registry.CuratedRegistry
}

// NewCuratedFeed maps the curated registry in a single page
func NewCuratedFeed(reg registry.CuratedRegistry) Feed {
	return &curatedFeed{registry: reg}
}

func (f *curatedFeed) FetchPage(_ context.Context, _ string) (Page, error) {
	curated, err := f.registry.Load()
	if err != nil {
		return Page{}, err
	}

	records := make([]RawRecord, 0, len(curated))
	for _, c := range curated {
		oppType := domain.OpportunityType(strings.ToLower(c.Type))
		if c.Type == "" {
			oppType = Classify(c.Title, c.Description)
		}

		var req *domain.Requirements
		if c.Requirements != nil {
			req = &domain.Requirements{
				Chains:           domain.NormalizeChains(c.Requirements.Chains),
				MinWalletAgeDays: c.Requirements.MinWalletAgeDays,
				MinTxCount:       c.Requirements.MinTxCount,
				RequiredTokens:   c.Requirements.RequiredTokens,
			}
		}

		active := true
		if c.Active != nil {
			active = *c.Active
		}

		records = append(records, RawRecord{
			SourceRef:    c.ID,
			Type:         oppType,
			Title:        c.Title,
			Description:  c.Description,
			URL:          c.URL,
			Protocol:     c.Protocol,
			Chains:       c.Chains,
			Tags:         c.Tags,
			Weight:       c.Weight,
			Active:       active,
			CreatedAt:    c.CreatedAt,
			EndsAt:       c.EndsAt,
			SnapshotDate: c.SnapshotDate,
			Requirements: req,
		})
	}
	return Page{Records: records}, nil
}

func unixTime(sec *int64) *time.Time {
	if sec == nil || *sec <= 0 {
		return nil
	}
	t := time.Unix(*sec, 0).UTC()
	return &t
}
