package entities

// Permission representa uma ação sobre uma obra
type Permission string

const (
	PermissionWorkRead   Permission = "works.read"
	PermissionWorkWrite  Permission = "works.write"
	PermissionWorkDelete Permission = "works.delete"
	PermissionVoteCast   Permission = "votes.cast"
)

// ownerOnly lista as permissões restritas ao dono da obra
var ownerOnly = map[Permission]bool{
	PermissionWorkWrite:  true,
	PermissionWorkDelete: true,
}

// Can verifica se o usuário pode executar a ação sobre a obra.
// Usuário nil (anônimo) nunca tem permissão.
func (u *User) Can(permission Permission, work *Work) bool {
	if u == nil || u.ID == "" {
		return false
	}

	if ownerOnly[permission] {
		return work != nil && work.IsOwnedBy(u.ID)
	}

	switch permission {
	case PermissionWorkRead, PermissionVoteCast:
		return true
	default:
		return false
	}
}
