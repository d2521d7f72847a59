package domain

const (
	ChartDatasetLabel = "Focus Categories"
	ChartColor        = "#4e4caf"
)

type ChartDataset struct {
	Label           string  `json:"label"`
	BackgroundColor string  `json:"backgroundColor"`
	Data            []int64 `json:"data"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// AggregateCategoryTime sums session durations per category name. Labels keep
// the order in which categories are first seen.
func AggregateCategoryTime(sessions []SessionRecord) *ChartData {
	labels := []string{}
	totals := []int64{}
	index := make(map[string]int)

	for _, s := range sessions {
		i, ok := index[s.CategoryName]
		if !ok {
			i = len(labels)
			index[s.CategoryName] = i
			labels = append(labels, s.CategoryName)
			totals = append(totals, 0)
		}
		totals[i] += s.Duration
	}

	return &ChartData{
		Labels: labels,
		Datasets: []ChartDataset{{
			Label:           ChartDatasetLabel,
			BackgroundColor: ChartColor,
			Data:            totals,
		}},
	}
}
