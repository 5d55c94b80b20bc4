package credit

import (
	"context"
	"math/rand"
	"time"
)

// Report is the bureau answer for one identity lookup.
type Report struct {
	Score      int      `json:"creditScore"`
	Grade      string   `json:"creditGrade"`
	History    *History `json:"creditHistory,omitempty"`
	ReportDate string   `json:"reportDate"`
}

type History struct {
	TotalAccounts     int            `json:"totalAccounts"`
	ActiveAccounts    int            `json:"activeAccounts"`
	ClosedAccounts    int            `json:"closedAccounts"`
	TotalInquiries    int            `json:"totalInquiries"`
	RecentInquiries   int            `json:"recentInquiries"`
	PaymentHistory    PaymentHistory `json:"paymentHistory"`
	CreditUtilization int            `json:"creditUtilization"`
	OldestAccount     int            `json:"oldestAccount"`
	RecentActivity    []Activity     `json:"recentActivity"`
}

type PaymentHistory struct {
	OnTime int `json:"onTime"`
	Late   int `json:"late"`
	Missed int `json:"missed"`
}

type Activity struct {
	Date   string  `json:"date"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount,omitempty"`
	Lender string  `json:"lender,omitempty"`
	Status string  `json:"status"`
}

// Bureau answers credit lookups keyed by phone or PAN.
type Bureau interface {
	Lookup(ctx context.Context, phone, pan string) (*Report, error)
}

// MockBureau derives a deterministic score from the identity characters so
// repeated lookups for the same person agree, and pads the answer with a
// randomized history block. Delay simulates the upstream round trip.
// Safe for concurrent lookups; the history draws from the locked
// package-level source.
type MockBureau struct {
	Delay time.Duration
}

var _ Bureau = &MockBureau{}

func NewMockBureau(delay time.Duration) *MockBureau {
	return &MockBureau{Delay: delay}
}

func (b *MockBureau) Lookup(ctx context.Context, phone, pan string) (*Report, error) {
	if b.Delay > 0 {
		select {
		case <-time.After(b.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	score := Score(phone, pan)
	return &Report{
		Score:      score,
		Grade:      Grade(score),
		History:    mockHistory(),
		ReportDate: time.Now().Format(time.RFC3339),
	}, nil
}

// Score maps an identity to a stable score in [500, 899]. Phone wins over
// PAN; with neither present the caller gets a neutral 600.
func Score(phone, pan string) int {
	seed := phone
	if seed == "" {
		seed = pan
	}
	if seed == "" {
		return 600
	}

	sum := 0
	for _, c := range seed {
		sum += int(c)
	}
	return 500 + (sum % 400)
}

// Grade buckets a score onto the marketplace letter ladder.
func Grade(score int) string {
	switch {
	case score >= 750:
		return "A+"
	case score >= 700:
		return "A"
	case score >= 650:
		return "B+"
	case score >= 600:
		return "B"
	case score >= 550:
		return "C+"
	case score >= 500:
		return "C"
	default:
		return "D"
	}
}

func mockHistory() *History {
	now := time.Now()
	return &History{
		TotalAccounts:   rand.Intn(10) + 5,
		ActiveAccounts:  rand.Intn(5) + 2,
		ClosedAccounts:  rand.Intn(5),
		TotalInquiries:  rand.Intn(8) + 1,
		RecentInquiries: rand.Intn(3),
		PaymentHistory: PaymentHistory{
			OnTime: rand.Intn(20) + 80,
			Late:   rand.Intn(10),
			Missed: rand.Intn(3),
		},
		CreditUtilization: rand.Intn(40) + 10,
		OldestAccount:     rand.Intn(10) + 2,
		RecentActivity: []Activity{
			{
				Date:   now.AddDate(0, 0, -rand.Intn(30)).Format(time.RFC3339),
				Type:   "Payment",
				Amount: float64(rand.Intn(50000) + 5000),
				Status: "On Time",
			},
			{
				Date:   now.AddDate(0, 0, -rand.Intn(60)).Format(time.RFC3339),
				Type:   "Credit Inquiry",
				Lender: "HDFC Bank",
				Status: "Approved",
			},
		},
	}
}
