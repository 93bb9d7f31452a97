package auth

import (
	"settings_backend/internal/models"
)

// Realm - грубая классификация получателя для маршрутизации уведомлений.
type Realm string

const (
	RealmOfficer Realm = "officer"
	RealmCitizen Realm = "citizen"
	// Пустой realm допустим: доставка выполняется без классификации.
	RealmUnknown Realm = ""
)

// RoleGate решает, допускает ли набор ролей операции над каналом.
// Чистая функция от (канал, роли); I/O здесь нет - роли разбирает
// вызывающая сторона из токена.
type RoleGate struct {
	officerRoles map[string]struct{}
	citizenRole  string
}

func NewRoleGate(officerRoles []string, citizenRole string) *RoleGate {
	set := make(map[string]struct{}, len(officerRoles))
	for _, r := range officerRoles {
		set[r] = struct{}{}
	}
	return &RoleGate{officerRoles: set, citizenRole: citizenRole}
}

// Verify: nil-роли - всегда отказ. Канал Diia закрыт для офицерских
// ролей (зарезервирован за гражданами). Остальные каналы открыты любому
// аутентифицированному набору ролей.
func (g *RoleGate) Verify(channel models.Channel, roles []string) bool {
	if roles == nil {
		return false
	}
	if channel == models.ChannelDiia {
		for _, r := range roles {
			if _, officer := g.officerRoles[r]; officer {
				return false
			}
		}
	}
	return true
}

// ResolveRealm классифицирует получателя по ролям. Роли вне обеих
// категорий дают пустой realm - доставка при этом не блокируется.
func (g *RoleGate) ResolveRealm(roles []string) Realm {
	for _, r := range roles {
		if _, officer := g.officerRoles[r]; officer {
			return RealmOfficer
		}
	}
	for _, r := range roles {
		if r == g.citizenRole {
			return RealmCitizen
		}
	}
	return RealmUnknown
}
