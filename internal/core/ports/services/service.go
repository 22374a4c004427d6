package services

// ServiceContainer bundles every service interface for route registration.
type ServiceContainer struct {
	User         UserSvc
	Group        GroupSvc
	GroupMember  GroupMemberSvc
	Category     CategorySvc
	Expense      ExpenseSvc
	ExpenseShare ExpenseShareSvc
	Settlement   SettlementSvc
	Balance      BalanceSvc
}
