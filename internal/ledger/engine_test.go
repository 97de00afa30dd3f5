package ledger

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "monevo/internal/errors"
	"monevo/internal/models"
	"monevo/internal/repository"
	"monevo/internal/testutil"
)

func newTestEngine(t *testing.T) (*Engine, repository.Ledger) {
	t.Helper()
	repo := repository.NewGormLedger(testutil.SetupTestDB(t))
	return NewEngine(repo), repo
}

func TestCreateBudget(t *testing.T) {
	engine, _ := newTestEngine(t)

	t.Run("success", func(t *testing.T) {
		budget, err := engine.CreateBudget("moto", decimal.NewFromInt(100000), "mensual")
		testutil.AssertNoError(t, err)
		if budget.Category != "moto" {
			t.Errorf("expected category moto, got %q", budget.Category)
		}
		if budget.Periodicity != models.PeriodicityMonthly {
			t.Errorf("expected monthly periodicity, got %s", budget.Periodicity)
		}
		if budget.ID == "" {
			t.Error("expected generated budget ID")
		}
	})

	t.Run("normalizes_category", func(t *testing.T) {
		budget, err := engine.CreateBudget("  Inversión  ", decimal.NewFromInt(50000), "monthly")
		testutil.AssertNoError(t, err)
		if budget.Category != "inversion" {
			t.Errorf("expected normalized category inversion, got %q", budget.Category)
		}
	})

	t.Run("duplicate_category", func(t *testing.T) {
		_, err := engine.CreateBudget("Moto", decimal.NewFromInt(1), "weekly")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("invalid_periodicity", func(t *testing.T) {
		_, err := engine.CreateBudget("casa", decimal.NewFromInt(100), "quincenal")
		testutil.AssertAppError(t, err, "INVALID_PERIODICITY")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		_, err := engine.CreateBudget("casa", decimal.Zero, "mensual")
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("empty_category", func(t *testing.T) {
		_, err := engine.CreateBudget("!!!", decimal.NewFromInt(100), "mensual")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestRecordMovementAndSummary(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.CreateBudget("moto", decimal.NewFromInt(100000), "mensual")
	testutil.AssertNoError(t, err)

	t.Run("expense_lowers_balance", func(t *testing.T) {
		_, err := engine.RecordMovement("moto", models.MovementKindExpense, decimal.NewFromInt(15000), "gasolina")
		testutil.AssertNoError(t, err)

		summary, err := engine.GetSummary("moto")
		testutil.AssertNoError(t, err)
		if !summary.Balance.Equal(decimal.NewFromInt(85000)) {
			t.Errorf("expected balance 85000, got %s", summary.Balance)
		}
		if summary.PercentUsed != 15.0 {
			t.Errorf("expected percent_used 15.0, got %v", summary.PercentUsed)
		}
	})

	t.Run("income_raises_balance_not_percent", func(t *testing.T) {
		_, err := engine.RecordMovement("moto", models.MovementKindIncome, decimal.NewFromInt(50000), "bono")
		testutil.AssertNoError(t, err)

		summary, err := engine.GetSummary("moto")
		testutil.AssertNoError(t, err)
		if !summary.Balance.Equal(decimal.NewFromInt(135000)) {
			t.Errorf("expected balance 135000, got %s", summary.Balance)
		}
		if summary.PercentUsed != 15.0 {
			t.Errorf("expected percent_used to stay at 15.0, got %v", summary.PercentUsed)
		}
		if !summary.Expenses.Equal(decimal.NewFromInt(15000)) || !summary.Incomes.Equal(decimal.NewFromInt(50000)) {
			t.Errorf("unexpected totals: expenses=%s incomes=%s", summary.Expenses, summary.Incomes)
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		_, err := engine.RecordMovement("ahorro", models.MovementKindExpense, decimal.NewFromInt(100), "")
		testutil.AssertAppError(t, err, "UNKNOWN_CATEGORY")
	})

	t.Run("non_positive_amount_persists_nothing", func(t *testing.T) {
		_, err := engine.RecordMovement("moto", models.MovementKindExpense, decimal.Zero, "")
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")

		movements, err := engine.GetHistory("moto", 0)
		testutil.AssertNoError(t, err)
		if len(movements) != 2 {
			t.Errorf("expected 2 movements, got %d", len(movements))
		}
	})

	t.Run("invalid_kind", func(t *testing.T) {
		_, err := engine.RecordMovement("moto", "transfer", decimal.NewFromInt(100), "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetSummaryOverBudget(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.CreateBudget("moto", decimal.NewFromInt(1000), "mensual")
	testutil.AssertNoError(t, err)
	_, err = engine.RecordMovement("moto", models.MovementKindExpense, decimal.NewFromInt(1500), "reparacion")
	testutil.AssertNoError(t, err)

	// Spending past the envelope is allowed: the summary reports a
	// negative balance and a percentage above 100.
	summary, err := engine.GetSummary("moto")
	testutil.AssertNoError(t, err)
	if !summary.Balance.Equal(decimal.NewFromInt(-500)) {
		t.Errorf("expected balance -500, got %s", summary.Balance)
	}
	if summary.PercentUsed != 150.0 {
		t.Errorf("expected percent_used 150.0, got %v", summary.PercentUsed)
	}
}

func TestGetSummaryUnknownCategory(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.GetSummary("ahorro")
	testutil.AssertAppError(t, err, "UNKNOWN_CATEGORY")
}

func TestGetAllSummaries(t *testing.T) {
	engine, _ := newTestEngine(t)

	for _, cat := range []string{"moto", "casa", "comida"} {
		_, err := engine.CreateBudget(cat, decimal.NewFromInt(1000), "mensual")
		testutil.AssertNoError(t, err)
	}
	_, err := engine.RecordMovement("casa", models.MovementKindExpense, decimal.NewFromInt(250), "")
	testutil.AssertNoError(t, err)

	summaries, err := engine.GetAllSummaries()
	testutil.AssertNoError(t, err)
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	// Listed alphabetically by category.
	if summaries[0].Category != "casa" || summaries[1].Category != "comida" || summaries[2].Category != "moto" {
		t.Errorf("unexpected order: %s, %s, %s", summaries[0].Category, summaries[1].Category, summaries[2].Category)
	}
	if summaries[0].PercentUsed != 25.0 {
		t.Errorf("expected casa percent_used 25.0, got %v", summaries[0].PercentUsed)
	}
}

func TestGetHistory(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.CreateBudget("moto", decimal.NewFromInt(100000), "mensual")
	testutil.AssertNoError(t, err)

	notes := []string{"first", "second", "third"}
	for _, note := range notes {
		_, err := engine.RecordMovement("moto", models.MovementKindExpense, decimal.NewFromInt(100), note)
		testutil.AssertNoError(t, err)
	}

	t.Run("most_recent_first", func(t *testing.T) {
		movements, err := engine.GetHistory("moto", 0)
		testutil.AssertNoError(t, err)
		if len(movements) != 3 {
			t.Fatalf("expected 3 movements, got %d", len(movements))
		}
		if movements[0].Note != "third" || movements[2].Note != "first" {
			t.Errorf("unexpected order: %s, %s, %s", movements[0].Note, movements[1].Note, movements[2].Note)
		}
	})

	t.Run("limit", func(t *testing.T) {
		movements, err := engine.GetHistory("moto", 2)
		testutil.AssertNoError(t, err)
		if len(movements) != 2 {
			t.Fatalf("expected 2 movements, got %d", len(movements))
		}
		if movements[0].Note != "third" || movements[1].Note != "second" {
			t.Errorf("unexpected window: %s, %s", movements[0].Note, movements[1].Note)
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		_, err := engine.GetHistory("ahorro", 0)
		testutil.AssertAppError(t, err, "UNKNOWN_CATEGORY")
	})
}

func TestUpdateBudget(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.CreateBudget("moto", decimal.NewFromInt(100000), "mensual")
	testutil.AssertNoError(t, err)

	t.Run("amount_only", func(t *testing.T) {
		amount := decimal.NewFromInt(200000)
		budget, err := engine.UpdateBudget("moto", &amount, nil)
		testutil.AssertNoError(t, err)
		if !budget.InitialAmount.Equal(amount) {
			t.Errorf("expected initial amount 200000, got %s", budget.InitialAmount)
		}
		if budget.Periodicity != models.PeriodicityMonthly {
			t.Errorf("periodicity changed unexpectedly: %s", budget.Periodicity)
		}
	})

	t.Run("periodicity_only", func(t *testing.T) {
		periodicity := "semanal"
		budget, err := engine.UpdateBudget("moto", nil, &periodicity)
		testutil.AssertNoError(t, err)
		if budget.Periodicity != models.PeriodicityWeekly {
			t.Errorf("expected weekly periodicity, got %s", budget.Periodicity)
		}
		if !budget.InitialAmount.Equal(decimal.NewFromInt(200000)) {
			t.Errorf("initial amount changed unexpectedly: %s", budget.InitialAmount)
		}
	})

	t.Run("nothing_to_update", func(t *testing.T) {
		_, err := engine.UpdateBudget("moto", nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_category", func(t *testing.T) {
		amount := decimal.NewFromInt(1)
		_, err := engine.UpdateBudget("ahorro", &amount, nil)
		testutil.AssertAppError(t, err, "UNKNOWN_CATEGORY")
	})
}

func TestDeleteBudgetCascades(t *testing.T) {
	engine, repo := newTestEngine(t)

	_, err := engine.CreateBudget("moto", decimal.NewFromInt(100000), "mensual")
	testutil.AssertNoError(t, err)
	_, err = engine.RecordMovement("moto", models.MovementKindExpense, decimal.NewFromInt(100), "")
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, engine.DeleteBudget("moto"))

	_, err = engine.GetSummary("moto")
	testutil.AssertAppError(t, err, "UNKNOWN_CATEGORY")

	movements, err := repo.ListMovements("moto", 0)
	testutil.AssertNoError(t, err)
	if len(movements) != 0 {
		t.Errorf("expected movements removed with budget, got %d", len(movements))
	}

	t.Run("category_reusable_after_delete", func(t *testing.T) {
		_, err := engine.CreateBudget("moto", decimal.NewFromInt(5000), "semanal")
		testutil.AssertNoError(t, err)
	})

	t.Run("unknown_category", func(t *testing.T) {
		testutil.AssertAppError(t, engine.DeleteBudget("ahorro"), "UNKNOWN_CATEGORY")
	})
}

func TestDeleteMovement(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.CreateBudget("moto", decimal.NewFromInt(100000), "mensual")
	testutil.AssertNoError(t, err)
	movement, err := engine.RecordMovement("moto", models.MovementKindExpense, decimal.NewFromInt(15000), "gasolina")
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, engine.DeleteMovement(movement.ID))

	summary, err := engine.GetSummary("moto")
	testutil.AssertNoError(t, err)
	if !summary.Balance.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("expected balance restored to 100000, got %s", summary.Balance)
	}
	if summary.PercentUsed != 0.0 {
		t.Errorf("expected percent_used 0.0, got %v", summary.PercentUsed)
	}

	t.Run("not_found", func(t *testing.T) {
		testutil.AssertAppError(t, engine.DeleteMovement("b9bd4d6f-0000-0000-0000-000000000000"), "MOVEMENT_NOT_FOUND")
	})
}

// Interleaved writes on one category must leave the ledger consistent:
// once the budget is gone, no movement recorded against it may survive.
func TestConcurrentRecordAndDeleteBudget(t *testing.T) {
	engine, repo := newTestEngine(t)

	_, err := engine.CreateBudget("moto", decimal.NewFromInt(100000), "mensual")
	testutil.AssertNoError(t, err)

	const writers = 8
	errs := make(chan error, writers*5+1)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				_, err := engine.RecordMovement("moto", models.MovementKindExpense, decimal.NewFromInt(10), "")
				errs <- err
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- engine.DeleteBudget("moto")
	}()
	wg.Wait()
	close(errs)

	// Records racing the deletion may lose the category; any other
	// failure means state was corrupted mid-flight.
	for err := range errs {
		if err != nil && !errors.Is(err, apperrors.ErrUnknownCategory) {
			t.Fatalf("unexpected error during interleaved writes: %v", err)
		}
	}

	_, err = engine.GetSummary("moto")
	testutil.AssertAppError(t, err, "UNKNOWN_CATEGORY")

	movements, err := repo.ListMovements("moto", 0)
	testutil.AssertNoError(t, err)
	if len(movements) != 0 {
		t.Errorf("expected no movements to survive budget deletion, got %d", len(movements))
	}
}
