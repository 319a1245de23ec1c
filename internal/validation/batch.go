package validation

// InvalidRecord ties a failed record back to its position in the input batch.
type InvalidRecord struct {
	Index  int      `json:"index"`
	Errors []string `json:"errors"`
}

// BatchSummary reports ingestion counts. Warnings sums across every record,
// valid or not.
type BatchSummary struct {
	Total    int `json:"total"`
	Valid    int `json:"valid"`
	Invalid  int `json:"invalid"`
	Warnings int `json:"warnings"`
}

// BatchResult partitions a validated batch. Valid preserves input order;
// Invalid entries carry their original index.
type BatchResult struct {
	Valid   []StudentRecord `json:"valid"`
	Invalid []InvalidRecord `json:"invalid"`
	Summary BatchSummary    `json:"summary"`
}

// ValidateBatch validates every record independently. A bad record never
// aborts the batch; bulk ingestion needs the full partition to report on.
func (v *Validator) ValidateBatch(records []map[string]any) BatchResult {
	result := BatchResult{
		Valid:   []StudentRecord{},
		Invalid: []InvalidRecord{},
		Summary: BatchSummary{Total: len(records)},
	}

	for index, raw := range records {
		validated := v.ValidateAndFormat(raw)
		result.Summary.Warnings += len(validated.Warnings)

		if validated.IsValid {
			result.Valid = append(result.Valid, *validated.FormattedData)
			result.Summary.Valid++
			continue
		}

		result.Invalid = append(result.Invalid, InvalidRecord{Index: index, Errors: validated.Errors})
		result.Summary.Invalid++
	}

	return result
}
