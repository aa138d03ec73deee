package repositories

import (
	"context"

	"github.com/nkoudou/fastcompta/internal/models"
)

type AccountingRepository interface {
	List(ctx context.Context) ([]*models.Accounting, error)
	GetByCode(ctx context.Context, code string) (*models.Accounting, error)
	Create(ctx context.Context, a *models.Accounting) error
	Update(ctx context.Context, code string, p UpdateAccountingParams) (*models.Accounting, error)
	SoftDelete(ctx context.Context, code string) error
}

type TransactionRepository interface {
	List(ctx context.Context, f TransactionFilter) ([]*models.Transaction, error)
	GetByCode(ctx context.Context, txCode string) (*models.Transaction, error)
	Create(ctx context.Context, t *models.Transaction) error
	Update(ctx context.Context, txCode string, p UpdateTransactionParams) (*models.Transaction, error)
	SoftDelete(ctx context.Context, txCode string) error
}

type GoalRepository interface {
	List(ctx context.Context, f GoalFilter) ([]*models.Goal, error)
	GetByID(ctx context.Context, id int64) (*models.Goal, error)
	Create(ctx context.Context, g *models.Goal) error
	Update(ctx context.Context, id int64, p UpdateGoalParams) (*models.Goal, error)
	SoftDelete(ctx context.Context, id int64) error
}

type GoalContribRepository interface {
	List(ctx context.Context, f GoalContribFilter) ([]*models.GoalContrib, error)
	GetByID(ctx context.Context, id int64) (*models.GoalContrib, error)
	Create(ctx context.Context, c *models.GoalContrib) error
	Update(ctx context.Context, id int64, p UpdateGoalContribParams) (*models.GoalContrib, error)
	SoftDelete(ctx context.Context, id int64) error
}

type DebtRepository interface {
	List(ctx context.Context, f DebtFilter) ([]*models.Debt, error)
	GetByID(ctx context.Context, id int64) (*models.Debt, error)
	Create(ctx context.Context, d *models.Debt) error
	Update(ctx context.Context, id int64, p UpdateDebtParams) (*models.Debt, error)
	SoftDelete(ctx context.Context, id int64) error
}

type DebtPaymentRepository interface {
	List(ctx context.Context, f DebtPaymentFilter) ([]*models.DebtPayment, error)
	GetByID(ctx context.Context, id int64) (*models.DebtPayment, error)
	Create(ctx context.Context, p *models.DebtPayment) error
	Update(ctx context.Context, id int64, p UpdateDebtPaymentParams) (*models.DebtPayment, error)
	SoftDelete(ctx context.Context, id int64) error
}

type SavingRepository interface {
	List(ctx context.Context, f SavingFilter) ([]*models.Saving, error)
	GetByID(ctx context.Context, id int64) (*models.Saving, error)
	Create(ctx context.Context, s *models.Saving) error
	Update(ctx context.Context, id int64, p UpdateSavingParams) (*models.Saving, error)
	SoftDelete(ctx context.Context, id int64) error
}

type SavingMoveRepository interface {
	List(ctx context.Context, f SavingMoveFilter) ([]*models.SavingMove, error)
	GetByID(ctx context.Context, id int64) (*models.SavingMove, error)
	Create(ctx context.Context, m *models.SavingMove) error
	Update(ctx context.Context, id int64, p UpdateSavingMoveParams) (*models.SavingMove, error)
	SoftDelete(ctx context.Context, id int64) error
}

type AutoSaveRepository interface {
	List(ctx context.Context, f AutoSaveFilter) ([]*models.AutoSave, error)
	GetByID(ctx context.Context, id int64) (*models.AutoSave, error)
	Create(ctx context.Context, a *models.AutoSave) error
	Update(ctx context.Context, id int64, p UpdateAutoSaveParams) (*models.AutoSave, error)
	SoftDelete(ctx context.Context, id int64) error
}

type FinanceEventRepository interface {
	List(ctx context.Context, f FinanceEventFilter) ([]*models.FinanceEvent, error)
	GetByID(ctx context.Context, id int64) (*models.FinanceEvent, error)
	Create(ctx context.Context, e *models.FinanceEvent) error
	Update(ctx context.Context, id int64, p UpdateFinanceEventParams) (*models.FinanceEvent, error)
	SoftDelete(ctx context.Context, id int64) error
}

type SettingRepository interface {
	All(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (*models.Setting, error)
	Create(ctx context.Context, s *models.Setting) error
	Set(ctx context.Context, key, value string) (*models.Setting, error)
	SoftDelete(ctx context.Context, key string) error
}
