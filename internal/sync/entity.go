package sync

import (
	"errors"

	"github.com/nkoudou/fastcompta/internal/database"
)

// Field is one mutable column of a synchronizable table. When the client
// omits the field, Default (or the apply timestamp, when NowDefault is set)
// is stored instead. JSON marks columns that carry serialized JSON, so
// structured payloads are marshalled before hitting the store.
type Field struct {
	Name       string
	Default    any
	NowDefault bool
	JSON       bool
}

// Descriptor is the per-entity wiring consumed by the generic delta builder
// and appliers: payload key, table, natural key and mutable field list. One
// entry per entity replaces eleven hand-written upsert/delta variants.
type Descriptor struct {
	Name        string // key in sync payloads, e.g. "goalContribs"
	Singular    string // label used in conflict and error records
	Table       string
	Key         string // natural key column
	Fields      []Field
	GuardDelete func(id any) error
}

var errMasterDelete = errors.New("cannot delete the MASTER accounting")

// Entities lists every synchronizable entity in push processing order.
// Transactions first, settings last; the order is fixed so concurrent pushes
// serialized by the store touch tables in the same sequence.
var Entities = []Descriptor{
	{
		Name:     "transactions",
		Singular: "transaction",
		Table:    database.TableTransactions,
		Key:      "tx_code",
		Fields: []Field{
			{Name: "accounting_code"},
			{Name: "kind"},
			{Name: "amount"},
			{Name: "label"},
			{Name: "note"},
			{Name: "category"},
			{Name: "tx_date", NowDefault: true},
		},
	},
	{
		Name:     "accountings",
		Singular: "accounting",
		Table:    database.TableAccountings,
		Key:      "code",
		Fields: []Field{
			{Name: "name"},
			{Name: "type"},
			{Name: "parent_code"},
			{Name: "currency", Default: "XAF"},
			{Name: "opening_balance", Default: int64(0)},
		},
		GuardDelete: func(id any) error {
			if code, ok := id.(string); ok && code == database.MasterAccountingCode {
				return errMasterDelete
			}
			return nil
		},
	},
	{
		Name:     "goals",
		Singular: "goal",
		Table:    database.TableGoals,
		Key:      "id",
		Fields: []Field{
			{Name: "title"},
			{Name: "note"},
			{Name: "start_amount", Default: int64(0)},
			{Name: "target_amount"},
			{Name: "deadline"},
			{Name: "archived", Default: int64(0)},
		},
	},
	{
		Name:     "goalContribs",
		Singular: "goalContrib",
		Table:    database.TableGoalContribs,
		Key:      "id",
		Fields: []Field{
			{Name: "goal_id"},
			{Name: "amount"},
			{Name: "note"},
			{Name: "occurred_at", NowDefault: true},
		},
	},
	{
		Name:     "debts",
		Singular: "debt",
		Table:    database.TableDebts,
		Key:      "id",
		Fields: []Field{
			{Name: "name"},
			{Name: "principal_amount"},
			{Name: "remaining_amount"},
			{Name: "type", Default: "debt"},
			{Name: "lender"},
			{Name: "note"},
			{Name: "due_date"},
			{Name: "closed", Default: int64(0)},
		},
	},
	{
		Name:     "debtPayments",
		Singular: "debtPayment",
		Table:    database.TableDebtPayments,
		Key:      "id",
		Fields: []Field{
			{Name: "debt_id"},
			{Name: "amount"},
			{Name: "note"},
			{Name: "occurred_at", NowDefault: true},
		},
	},
	{
		Name:     "savings",
		Singular: "saving",
		Table:    database.TableSavings,
		Key:      "id",
		Fields: []Field{
			{Name: "title"},
			{Name: "note"},
			{Name: "accounting_code"},
			{Name: "archived", Default: int64(0)},
		},
	},
	{
		Name:     "savingMoves",
		Singular: "savingMove",
		Table:    database.TableSavingMoves,
		Key:      "id",
		Fields: []Field{
			{Name: "saving_id"},
			{Name: "direction"},
			{Name: "amount"},
			{Name: "note"},
			{Name: "occurred_at", NowDefault: true},
		},
	},
	{
		Name:     "autoSaves",
		Singular: "autoSave",
		Table:    database.TableAutoSaves,
		Key:      "id",
		Fields: []Field{
			{Name: "title"},
			{Name: "note"},
			{Name: "amount"},
			{Name: "cadence"},
			{Name: "enabled", Default: int64(1)},
			{Name: "start_at", NowDefault: true},
			{Name: "last_run_at"},
			{Name: "accounting_code"},
		},
	},
	{
		Name:     "financeEvents",
		Singular: "financeEvent",
		Table:    database.TableFinanceEvents,
		Key:      "id",
		Fields: []Field{
			{Name: "type"},
			{Name: "title"},
			{Name: "ref_id"},
			{Name: "amount"},
			{Name: "meta", JSON: true},
			{Name: "occurred_at", NowDefault: true},
		},
	},
	{
		Name:     "settings",
		Singular: "setting",
		Table:    database.TableAppSettings,
		Key:      "key",
		Fields: []Field{
			{Name: "value"},
		},
	},
}
