package search

import "sort"

// Index is an inverted index mapping each normalized token to the set of
// document identifiers containing it. It keeps a reference to the collection
// it was built from so search results resolve back to full documents.
// Read-only after BuildIndex returns, so concurrent Search calls are safe.
type Index struct {
	postings map[string]map[int]struct{}
	docs     []Document
}

// BuildIndex constructs the index from a document collection. Documents are
// tokenized with stemming enabled; processing order does not affect the
// resulting mapping.
func BuildIndex(docs []Document) *Index {
	x := &Index{
		postings: make(map[string]map[int]struct{}),
		docs:     docs,
	}
	for _, doc := range docs {
		x.add(doc)
	}
	return x
}

func (x *Index) add(doc Document) {
	for _, token := range doc.Tokens(true) {
		set, ok := x.postings[token]
		if !ok {
			set = make(map[int]struct{})
			x.postings[token] = set
		}
		set[doc.ID] = struct{}{}
	}
}

// Search answers a conjunctive query: the result is the set of documents
// containing every query token, sorted ascending by identifier. A query that
// tokenizes to nothing, or that contains any token unknown to the index,
// yields an empty result. Errors are never signaled.
func (x *Index) Search(q Query) []Document {
	tokens := q.Tokens(true)
	if len(tokens) == 0 {
		return nil
	}

	// Every query token must exist in the index. Intersecting only the
	// found subset would silently widen partially-indexed queries.
	sets := make([]map[int]struct{}, 0, len(tokens))
	for _, token := range tokens {
		set, ok := x.postings[token]
		if !ok {
			return nil
		}
		sets = append(sets, set)
	}

	matching := intersect(sets)

	results := make([]Document, 0, len(matching))
	for _, doc := range x.docs {
		if _, ok := matching[doc.ID]; ok {
			results = append(results, doc)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})
	return results
}

// Terms returns the number of distinct tokens in the index.
func (x *Index) Terms() int {
	return len(x.postings)
}

// Documents returns the collection the index was built from.
func (x *Index) Documents() []Document {
	return x.docs
}

// intersect narrows a copy of the smallest set by membership in the rest.
func intersect(sets []map[int]struct{}) map[int]struct{} {
	smallest := sets[0]
	for _, s := range sets[1:] {
		if len(s) < len(smallest) {
			smallest = s
		}
	}
	out := make(map[int]struct{}, len(smallest))
	for id := range smallest {
		out[id] = struct{}{}
	}
	for _, s := range sets {
		for id := range out {
			if _, ok := s[id]; !ok {
				delete(out, id)
			}
		}
	}
	return out
}
