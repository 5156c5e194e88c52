package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sekolahvote/pemira-api/internal/domain"
)

type fakeSchoolRepo struct {
	info domain.SchoolInfo
}

func (f *fakeSchoolRepo) Get(_ context.Context) (domain.SchoolInfo, error) {
	return f.info, nil
}

func (f *fakeSchoolRepo) Update(_ context.Context, fields map[string]interface{}) (domain.SchoolInfo, error) {
	if name, ok := fields["name"].(string); ok {
		f.info.Name = name
	}

	return f.info, nil
}

func TestReportService_Ranking(t *testing.T) {
	candidateRepo := &fakeCandidateRepo{candidates: []domain.Candidate{
		{ID: 1, Name: "Budi", Kelas: "XII-A", VoteCount: 5},
		{ID: 2, Name: "Sari", Kelas: "XI-B", VoteCount: 12},
		{ID: 3, Name: "Andi", Kelas: "X-C", VoteCount: 3},
	}}
	svc := NewReportService(candidateRepo, &fakeSchoolRepo{})

	ranked, total, err := svc.Ranking(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 20, total)
	require.Len(t, ranked, 3)

	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "Sari", ranked[0].Name)
	assert.InDelta(t, 60.0, ranked[0].Percentage, 0.001)

	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, "Budi", ranked[1].Name)
	assert.InDelta(t, 25.0, ranked[1].Percentage, 0.001)

	assert.Equal(t, 3, ranked[2].Rank)
	assert.Equal(t, "Andi", ranked[2].Name)
	assert.InDelta(t, 15.0, ranked[2].Percentage, 0.001)
}

func TestReportService_Ranking_NoVotes(t *testing.T) {
	candidateRepo := &fakeCandidateRepo{candidates: []domain.Candidate{
		{ID: 1, Name: "Budi"},
		{ID: 2, Name: "Sari"},
	}}
	svc := NewReportService(candidateRepo, &fakeSchoolRepo{})

	ranked, total, err := svc.Ranking(context.Background())
	require.NoError(t, err)

	assert.Zero(t, total)
	for _, r := range ranked {
		assert.Zero(t, r.Percentage)
	}

	// Ties keep the stored order.
	assert.Equal(t, "Budi", ranked[0].Name)
	assert.Equal(t, "Sari", ranked[1].Name)
}

func TestReportService_ExportXLSX(t *testing.T) {
	candidateRepo := &fakeCandidateRepo{candidates: []domain.Candidate{
		{ID: 1, Name: "Budi", Kelas: "XII-A", VoteCount: 5},
		{ID: 2, Name: "Sari", Kelas: "XI-B", VoteCount: 15},
	}}
	schoolRepo := &fakeSchoolRepo{info: domain.SchoolInfo{Name: "SMA Negeri 1"}}
	svc := NewReportService(candidateRepo, schoolRepo)

	data, filename, err := svc.ExportXLSX(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("hasil_pemilihan_%d.xlsx", time.Now().Year()), filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 8)

	assert.Equal(t, "Hasil Akhir Pemilihan Ketua OSIS", rows[0][0])
	assert.Equal(t, "SMA Negeri 1", rows[1][0])
	assert.Equal(t, "Total Vote: 20", rows[3][0])
	assert.Equal(t, []string{"Peringkat", "Nama Kandidat", "Kelas", "Jumlah Vote", "Persentase"}, rows[5])
	assert.Equal(t, []string{"1", "Sari", "XI-B", "15", "75.00%"}, rows[6])
	assert.Equal(t, []string{"2", "Budi", "XII-A", "5", "25.00%"}, rows[7])
}
