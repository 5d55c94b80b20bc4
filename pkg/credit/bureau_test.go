package credit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreIsDeterministic(t *testing.T) {
	first := Score("9876543210", "")
	second := Score("9876543210", "")
	assert.Equal(t, first, second)

	assert.GreaterOrEqual(t, first, 500)
	assert.LessOrEqual(t, first, 899)
}

func TestScorePhoneWinsOverPan(t *testing.T) {
	withBoth := Score("9876543210", "ABCDE1234F")
	phoneOnly := Score("9876543210", "")
	assert.Equal(t, phoneOnly, withBoth)
}

func TestScoreNeutralDefault(t *testing.T) {
	assert.Equal(t, 600, Score("", ""))
}

func TestGradeLadder(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{800, "A+"},
		{750, "A+"},
		{749, "A"},
		{700, "A"},
		{699, "B+"},
		{650, "B+"},
		{649, "B"},
		{600, "B"},
		{599, "C+"},
		{550, "C+"},
		{549, "C"},
		{500, "C"},
		{499, "D"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Grade(tt.score), "score %d", tt.score)
	}
}

func TestLookupPopulatesReport(t *testing.T) {
	b := NewMockBureau(0)

	report, err := b.Lookup(context.Background(), "9876543210", "")
	require.NoError(t, err)
	assert.Equal(t, Score("9876543210", ""), report.Score)
	assert.Equal(t, Grade(report.Score), report.Grade)
	require.NotNil(t, report.History)
	assert.NotEmpty(t, report.History.RecentActivity)
	assert.NotEmpty(t, report.ReportDate)
}

func TestLookupSafeForConcurrentUse(t *testing.T) {
	b := NewMockBureau(0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				report, err := b.Lookup(context.Background(), "9876543210", "")
				assert.NoError(t, err)
				assert.NotNil(t, report)
			}
		}()
	}
	wg.Wait()
}

func TestLookupHonorsContextCancellation(t *testing.T) {
	b := NewMockBureau(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := b.Lookup(ctx, "9876543210", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
