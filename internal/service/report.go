package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sekolahvote/pemira-api/internal/domain"
)

type ReportService struct {
	candidateRepo BallotCandidateRepository
	schoolRepo    SchoolInfoRepository
}

func NewReportService(candidateRepo BallotCandidateRepository, schoolRepo SchoolInfoRepository) *ReportService {
	return &ReportService{
		candidateRepo: candidateRepo,
		schoolRepo:    schoolRepo,
	}
}

// Ranking returns candidates ordered by vote count, with each candidate's
// share of the total. Ties keep the stored order.
func (s *ReportService) Ranking(ctx context.Context) ([]domain.RankedCandidate, int, error) {
	candidates, err := s.candidateRepo.ListAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("s.candidateRepo.ListAll -> %w", err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].VoteCount > candidates[j].VoteCount
	})

	total := 0
	for _, c := range candidates {
		total += c.VoteCount
	}

	ranked := make([]domain.RankedCandidate, len(candidates))
	for i, c := range candidates {
		percentage := 0.0
		if total > 0 {
			percentage = float64(c.VoteCount) / float64(total) * 100
		}
		ranked[i] = domain.RankedCandidate{
			Rank:       i + 1,
			Name:       c.Name,
			Kelas:      c.Kelas,
			VoteCount:  c.VoteCount,
			Percentage: percentage,
		}
	}

	return ranked, total, nil
}

// ExportXLSX renders the final report as a spreadsheet: school header,
// total, then the ranked table.
func (s *ReportService) ExportXLSX(ctx context.Context) ([]byte, string, error) {
	ranked, total, err := s.Ranking(ctx)
	if err != nil {
		return nil, "", err
	}

	info, err := s.schoolRepo.Get(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("s.schoolRepo.Get -> %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	year := time.Now().Year()

	rows := [][]interface{}{
		{"Hasil Akhir Pemilihan Ketua OSIS"},
		{info.Name},
		{fmt.Sprintf("Tahun %d", year)},
		{fmt.Sprintf("Total Vote: %d", total)},
		{},
		{"Peringkat", "Nama Kandidat", "Kelas", "Jumlah Vote", "Persentase"},
	}
	for _, r := range ranked {
		rows = append(rows, []interface{}{
			r.Rank, r.Name, r.Kelas, r.VoteCount, fmt.Sprintf("%.2f%%", r.Percentage),
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, "", fmt.Errorf("excelize.CoordinatesToCellName -> %w", err)
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", fmt.Errorf("f.SetSheetRow -> %w", err)
		}
	}

	var buf bytes.Buffer
	if err = f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("f.Write -> %w", err)
	}

	filename := fmt.Sprintf("hasil_pemilihan_%d.xlsx", year)

	return buf.Bytes(), filename, nil
}
