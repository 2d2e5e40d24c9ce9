// internal/workers/careers/search-careers/query.go
package searchcareers

import "strings"

// filterAll is the UI value meaning "no filter" for category and stream.
const filterAll = "all"

// buildQuery turns the search input into an Elasticsearch query body.
// Without keywords every matching career is returned in title order.
func buildQuery(input *Input) map[string]interface{} {
	must := []interface{}{}
	filter := []interface{}{}

	if keywords := strings.TrimSpace(input.Keywords); keywords != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"title^3", "description^2", "skills"},
				"type":   "best_fields",
			},
		})
	} else {
		must = append(must, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	if v := termValue(input.Category); v != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"category": v},
		})
	}
	if v := termValue(input.Stream); v != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"stream": v},
		})
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
	}
	if strings.TrimSpace(input.Keywords) == "" {
		body["sort"] = []interface{}{
			map[string]interface{}{"title.keyword": map[string]interface{}{"order": "asc"}},
		}
	}
	return body
}

func termValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, filterAll) {
		return ""
	}
	return v
}

// pageSize applies the default and upper bound to a requested page size.
func (c *Config) pageSize(requested int) int {
	switch {
	case requested < 1:
		return c.DefaultSize
	case requested > c.MaxSize:
		return c.MaxSize
	default:
		return requested
	}
}
