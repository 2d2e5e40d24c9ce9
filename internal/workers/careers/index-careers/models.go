// internal/workers/careers/index-careers/models.go
package indexcareers

type Output struct {
	Index   string `json:"index"`
	Indexed int    `json:"indexed"`
	Errors  int    `json:"errors"`
}

type bulkItem struct {
	ID     string `json:"_id"`
	Status int    `json:"status"`
	Error  *struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error,omitempty"`
}

type bulkResponse struct {
	Errors bool                  `json:"errors"`
	Items  []map[string]bulkItem `json:"items"`
}

// careerMapping keeps category and stream exact so the search filters can use term queries.
const careerMapping = `{
  "mappings": {
    "properties": {
      "id": {"type": "long"},
      "title": {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "category": {"type": "keyword"},
      "stream": {"type": "keyword"},
      "description": {"type": "text"},
      "salary_range": {"type": "keyword", "index": false},
      "growth": {"type": "keyword"},
      "skills": {"type": "text"},
      "match_keywords": {"type": "keyword"}
    }
  }
}`
