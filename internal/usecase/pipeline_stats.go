package usecase

import "github.com/xavierca1/ligue-pipeline/internal/entity"

type PipelineStats struct {
	TotalLeads      int     `json:"totalLeads"`
	TotalValue      float64 `json:"totalValue"`
	ClosedWonValue  float64 `json:"closedWonValue"`
	ConversionRate  float64 `json:"conversionRate"`
	AverageDealSize float64 `json:"averageDealSize"`
	QualifiedLeads  int     `json:"qualifiedLeads"`
}

// ComputeStats calcula os cards do topo. Divisões por zero viram 0.
func ComputeStats(leads []entity.Lead) PipelineStats {
	var (
		stats    PipelineStats
		wonCount int
	)
	stats.TotalLeads = len(leads)

	for _, l := range leads {
		stats.TotalValue += l.DealValue
		if l.Stage == entity.StageClosedWon {
			wonCount++
			stats.ClosedWonValue += l.DealValue
		}
		if l.Stage.IsQualified() {
			stats.QualifiedLeads++
		}
	}

	if stats.TotalLeads > 0 {
		stats.ConversionRate = float64(wonCount) / float64(stats.TotalLeads) * 100
	}
	if wonCount > 0 {
		stats.AverageDealSize = stats.ClosedWonValue / float64(wonCount)
	}
	return stats
}

// StageColumn é uma coluna do board.
type StageColumn struct {
	Stage      entity.Stage  `json:"stage"`
	Leads      []entity.Lead `json:"leads"`
	Count      int           `json:"count"`
	TotalValue float64       `json:"totalValue"`
}

// GroupByStage monta as seis colunas na ordem do funil, inclusive as vazias.
func GroupByStage(leads []entity.Lead) []StageColumn {
	columns := make([]StageColumn, len(entity.Stages))
	index := make(map[entity.Stage]int, len(entity.Stages))
	for i, s := range entity.Stages {
		columns[i] = StageColumn{Stage: s, Leads: []entity.Lead{}}
		index[s] = i
	}

	for _, l := range leads {
		i, ok := index[l.Stage]
		if !ok {
			continue
		}
		columns[i].Leads = append(columns[i].Leads, l)
		columns[i].Count++
		columns[i].TotalValue += l.DealValue
	}
	return columns
}
