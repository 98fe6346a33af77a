package treatment

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cynemos/smileinventory/pkg/db/models"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
)

func TestComputeTotalCost(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	missing := uuid.New()
	catalog := map[uuid.UUID]decimal.Decimal{
		productA: decimal.NewFromFloat(45.50),
		productB: decimal.NewFromInt(250),
	}

	cases := []struct {
		name  string
		lines []Line
		want  string
	}{
		{name: "empty", lines: nil, want: "0"},
		{name: "single line", lines: []Line{{ProductID: productA, Quantity: 2}}, want: "91"},
		{
			name:  "multiple lines",
			lines: []Line{{ProductID: productA, Quantity: 1}, {ProductID: productB, Quantity: 2}},
			want:  "545.5",
		},
		{
			name:  "missing product contributes zero",
			lines: []Line{{ProductID: productA, Quantity: 2}, {ProductID: missing, Quantity: 10}},
			want:  "91",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotalCost(tc.lines, catalog)
			if got.String() != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
			// pure: a second run over the same inputs yields the same result
			if again := ComputeTotalCost(tc.lines, catalog); !again.Equal(got) {
				t.Fatalf("cost not idempotent: %s then %s", got, again)
			}
		})
	}
}

func TestAddLineMergesDuplicates(t *testing.T) {
	productA := uuid.New()
	lines := []Line{{ProductID: productA, Quantity: 2}}

	merged, err := AddLine(lines, productA, 3)
	if err != nil {
		t.Fatalf("add line: %v", err)
	}
	if len(merged) != 1 {
		t.Fatalf("expected 1 line after merge, got %d", len(merged))
	}
	if merged[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", merged[0].Quantity)
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("input slice mutated: %d", lines[0].Quantity)
	}

	appended, err := AddLine(merged, uuid.New(), 1)
	if err != nil {
		t.Fatalf("add line: %v", err)
	}
	if len(appended) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(appended))
	}
}

func TestAddLineRejectsNonPositiveQuantity(t *testing.T) {
	for _, qty := range []int{0, -1} {
		_, err := AddLine(nil, uuid.New(), qty)
		if err == nil {
			t.Fatalf("expected error for quantity %d", qty)
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestValidateStock(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	products := map[uuid.UUID]*models.Product{
		productA: {ID: productA, Name: "Composite Resin"},
		productB: {ID: productB, Name: "Titanium Implant"},
	}
	items := map[uuid.UUID][]models.InventoryItem{
		productA: {{Quantity: 3}, {Quantity: 1}},
		productB: {{Quantity: 0}},
	}

	problems := ValidateStock([]Line{
		{ProductID: productA, Quantity: 4},
		{ProductID: productB, Quantity: 2},
	}, products, items)
	if len(problems) != 1 {
		t.Fatalf("expected 1 problem, got %d: %v", len(problems), problems)
	}
	if problems[0] != "insufficient stock for Titanium Implant (available: 0)" {
		t.Fatalf("unexpected message %q", problems[0])
	}

	problems = ValidateStock([]Line{
		{ProductID: productA, Quantity: 10},
		{ProductID: productB, Quantity: 1},
	}, products, items)
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %d", len(problems))
	}
	for _, problem := range problems {
		if !strings.Contains(problem, "available:") {
			t.Fatalf("message missing available total: %q", problem)
		}
	}

	if problems := ValidateStock([]Line{{ProductID: productA, Quantity: 4}}, products, items); problems != nil {
		t.Fatalf("expected committable set, got %v", problems)
	}
}
