package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/splitflow/splitflow-api/internal/core/ports/repositories"
)

// RepositoryContainer bundles every pgx-backed repository behind its port
// interface so callers wire a single value instead of eight constructors.
type RepositoryContainer struct {
	User         portsrepo.UserRepository
	Group        portsrepo.GroupRepository
	GroupMember  portsrepo.GroupMemberRepository
	Category     portsrepo.CategoryRepository
	Expense      portsrepo.ExpenseRepository
	ExpenseShare portsrepo.ExpenseShareRepository
	Settlement   portsrepo.SettlementRepository
	Balance      portsrepo.BalanceRepository
}

// NewRepositoryContainer creates all repositories sharing one connection pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		User:         newPgxUserRepository(pool),
		Group:        newPgxGroupRepository(pool),
		GroupMember:  newPgxGroupMemberRepository(pool),
		Category:     newPgxCategoryRepository(pool),
		Expense:      newPgxExpenseRepository(pool),
		ExpenseShare: newPgxExpenseShareRepository(pool),
		Settlement:   newPgxSettlementRepository(pool),
		Balance:      newPgxBalanceRepository(pool),
	}
}
