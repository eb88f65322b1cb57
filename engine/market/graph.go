// Package market provides the Neo4j-backed market knowledge graph: brand
// and segment nodes with relation edges. The market-insights and
// recommendation handlers use it for enrichment; every failure is logged
// and skipped rather than surfaced to the user.
package market

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// Brand is a brand node in the market graph.
type Brand struct {
	Name        string  `json:"name"`
	Country     string  `json:"country,omitempty"`
	MarketShare float64 `json:"market_share,omitempty"`
}

// SegmentStat is an aggregate over one market segment.
type SegmentStat struct {
	Segment      string  `json:"segment"`
	AveragePrice float64 `json:"average_price"`
	ListingCount int     `json:"listing_count"`
}

// Graph provides market-graph operations over a Neo4j driver.
type Graph struct {
	driver neo4j.DriverWithContext
}

// New creates a market Graph.
func New(driver neo4j.DriverWithContext) *Graph {
	return &Graph{driver: driver}
}

// SaveBrand creates or updates a brand node.
func (g *Graph) SaveBrand(ctx context.Context, b Brand) error {
	sess := g.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer sess.Close(ctx)

	cypher := `MERGE (n:Brand {name: $name}) SET n.country = $country, n.market_share = $share`
	_, err := sess.Run(ctx, cypher, map[string]any{
		"name":    b.Name,
		"country": b.Country,
		"share":   b.MarketShare,
	})
	if err != nil {
		return fmt.Errorf("market: save brand %s: %w", b.Name, err)
	}
	return nil
}

// RelateBrands records that two brands compete in the same buyer segment.
func (g *Graph) RelateBrands(ctx context.Context, a, b string) error {
	sess := g.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer sess.Close(ctx)

	cypher := `MATCH (x:Brand {name: $a}), (y:Brand {name: $b})
	           MERGE (x)-[:COMPETES_WITH]->(y)`
	_, err := sess.Run(ctx, cypher, map[string]any{"a": a, "b": b})
	if err != nil {
		return fmt.Errorf("market: relate %s %s: %w", a, b, err)
	}
	return nil
}

// RelatedBrands returns brands competing with the given one.
func (g *Graph) RelatedBrands(ctx context.Context, brand string) ([]Brand, error) {
	sess := g.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer sess.Close(ctx)

	cypher := `MATCH (:Brand {name: $name})-[:COMPETES_WITH]-(n:Brand)
	           RETURN DISTINCT n`
	result, err := sess.Run(ctx, cypher, map[string]any{"name": brand})
	if err != nil {
		return nil, fmt.Errorf("market: related brands for %s: %w", brand, err)
	}

	var out []Brand
	for result.Next(ctx) {
		node, ok := result.Record().Get("n")
		if !ok {
			continue
		}
		n, ok := node.(dbtype.Node)
		if !ok {
			continue
		}
		out = append(out, brandFromNode(n))
	}
	return out, nil
}

// SegmentStats returns aggregates per segment node linked to a brand.
func (g *Graph) SegmentStats(ctx context.Context, brand string) ([]SegmentStat, error) {
	sess := g.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer sess.Close(ctx)

	cypher := `MATCH (:Brand {name: $name})-[:SELLS_IN]->(s:Segment)
	           RETURN s.name AS segment, s.avg_price AS avg_price, s.listing_count AS listings`
	result, err := sess.Run(ctx, cypher, map[string]any{"name": brand})
	if err != nil {
		return nil, fmt.Errorf("market: segment stats for %s: %w", brand, err)
	}

	var out []SegmentStat
	for result.Next(ctx) {
		rec := result.Record()
		stat := SegmentStat{}
		if v, ok := rec.Get("segment"); ok {
			stat.Segment, _ = v.(string)
		}
		if v, ok := rec.Get("avg_price"); ok {
			stat.AveragePrice = toFloat(v)
		}
		if v, ok := rec.Get("listings"); ok {
			if n, ok := v.(int64); ok {
				stat.ListingCount = int(n)
			}
		}
		out = append(out, stat)
	}
	return out, nil
}

func brandFromNode(n dbtype.Node) Brand {
	b := Brand{}
	if v, ok := n.Props["name"]; ok {
		b.Name, _ = v.(string)
	}
	if v, ok := n.Props["country"]; ok {
		b.Country, _ = v.(string)
	}
	if v, ok := n.Props["market_share"]; ok {
		b.MarketShare = toFloat(v)
	}
	return b
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	default:
		return 0
	}
}
