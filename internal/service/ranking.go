package service

import (
	"sort"
	"strings"

	"nutriguide/internal/domain"
)

// Relevance weights. Additive on purpose, no normalization by product length
// or word frequency: downstream compatibility depends on the exact numbers.
const (
	scoreTagMatch        = 10
	scoreTitleMatch      = 5
	scoreCollectionMatch = 3

	fallbackTitleMatch      = 10
	fallbackCollectionMatch = 3

	defaultRankLimit = 3
)

// RankOptions controls one ranking call.
type RankOptions struct {
	TagRanking bool
	OnlyOnSale bool
}

// DefaultRankOptions enables tag ranking without the sale filter.
func DefaultRankOptions() RankOptions {
	return RankOptions{TagRanking: true}
}

// Rank scores candidates against a free-text query and returns the top 3 in
// relevance order. With tag ranking disabled it returns the first 3 in
// catalog order after the sale filter.
func Rank(candidates []domain.Product, query string, opts RankOptions) []domain.Product {
	if opts.OnlyOnSale {
		candidates = filterOnSale(candidates)
	}

	if !opts.TagRanking {
		return head(candidates, defaultRankLimit)
	}

	words := queryWords(query)
	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	for _, p := range candidates {
		scored = append(scored, domain.ScoredCandidate{Product: p, Score: scoreProduct(p, words)})
	}

	// Stable: ties keep catalog order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	top := make([]domain.Product, 0, defaultRankLimit)
	for _, sc := range scored {
		if len(top) == defaultRankLimit {
			break
		}
		top = append(top, sc.Product)
	}
	return top
}

// RankByTags ranks candidates assumed pre-filtered to those carrying at least
// one of the tags (tag:x OR tag:y at the data source). An empty candidate set
// falls back to treating the tags as keywords over titles and collections,
// discarding zero-score products. Both paths order by exact tag match count,
// descending and stable.
func RankByTags(candidates, fallbackPool []domain.Product, tags []string, limit int) []domain.Product {
	if limit <= 0 {
		limit = defaultRankLimit
	}

	pool := candidates
	if len(pool) == 0 {
		pool = make([]domain.Product, 0, len(fallbackPool))
		for _, p := range fallbackPool {
			if fallbackScore(p, tags) > 0 {
				pool = append(pool, p)
			}
		}
	}

	scored := make([]domain.ScoredCandidate, 0, len(pool))
	for _, p := range pool {
		scored = append(scored, domain.ScoredCandidate{Product: p, Score: tagMatchCount(p, tags)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	out := make([]domain.Product, 0, limit)
	for _, sc := range scored {
		if len(out) == limit {
			break
		}
		out = append(out, sc.Product)
	}
	return out
}

// queryWords tokenizes the query, keeping lowercased words longer than 2 runes.
func queryWords(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) > 2 {
			words = append(words, f)
		}
	}
	return words
}

func scoreProduct(p domain.Product, words []string) int {
	title := strings.ToLower(p.Title)
	score := 0
	for _, w := range words {
		for _, tag := range p.Tags {
			if tagMatches(tag, w) {
				score += scoreTagMatch
				break
			}
		}
		if strings.Contains(title, w) {
			score += scoreTitleMatch
		}
		for _, col := range p.Collections {
			if strings.Contains(strings.ToLower(col), w) {
				score += scoreCollectionMatch
				break
			}
		}
	}
	return score
}

// tagMatches accepts exact or substring matches in either direction.
func tagMatches(tag, word string) bool {
	tag = strings.ToLower(tag)
	return tag == word || strings.Contains(tag, word) || strings.Contains(word, tag)
}

// tagMatchCount counts how many of the requested tags a product carries,
// substring-aware in both directions.
func tagMatchCount(p domain.Product, tags []string) int {
	count := 0
	for _, want := range tags {
		want = strings.ToLower(want)
		for _, have := range p.Tags {
			if tagMatches(have, want) {
				count++
				break
			}
		}
	}
	return count
}

func fallbackScore(p domain.Product, tags []string) int {
	title := strings.ToLower(p.Title)
	score := 0
	for _, tag := range tags {
		tag = strings.ToLower(tag)
		if strings.Contains(title, tag) {
			score += fallbackTitleMatch
		}
		for _, col := range p.Collections {
			if strings.Contains(strings.ToLower(col), tag) {
				score += fallbackCollectionMatch
				break
			}
		}
	}
	return score
}

func filterOnSale(candidates []domain.Product) []domain.Product {
	kept := make([]domain.Product, 0, len(candidates))
	for _, p := range candidates {
		if p.OnSale {
			kept = append(kept, p)
		}
	}
	return kept
}

func head(products []domain.Product, n int) []domain.Product {
	if len(products) > n {
		products = products[:n]
	}
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}
