package services

import (
	portssvc "github.com/splitflow/splitflow-api/internal/core/ports/services"
	"github.com/splitflow/splitflow-api/internal/repositories/database/pgsql"
)

// NewServiceContainer wires every service onto the repository container.
func NewServiceContainer(repos *pgsql.RepositoryContainer) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:         NewUserService(repos.User),
		Group:        NewGroupService(repos.Group, repos.GroupMember),
		GroupMember:  NewGroupMemberService(repos.GroupMember),
		Category:     NewCategoryService(repos.Category),
		Expense:      NewExpenseService(repos.Expense, repos.ExpenseShare),
		ExpenseShare: NewExpenseShareService(repos.ExpenseShare),
		Settlement:   NewSettlementService(repos.Settlement),
		Balance:      NewBalanceService(repos.Balance),
	}
}
