package rbac

// Permission is the closed set of actions the access gate understands.
// Checks switch over this type exhaustively; there are no free-text
// permission names anywhere in the system.
type Permission int

const (
	PermissionViewBooks Permission = iota
	PermissionViewAuthors
	PermissionSubscribeToAuthor
	PermissionManageBooks
	PermissionManageAuthors
	PermissionViewReports
)

func (p Permission) String() string {
	switch p {
	case PermissionViewBooks:
		return "viewBooks"
	case PermissionViewAuthors:
		return "viewAuthors"
	case PermissionSubscribeToAuthor:
		return "subscribeToAuthor"
	case PermissionManageBooks:
		return "manageBooks"
	case PermissionManageAuthors:
		return "manageAuthors"
	case PermissionViewReports:
		return "viewReports"
	default:
		return "unknown"
	}
}

// RoleUser is the only non-guest role in the system.
const RoleUser = "user"
