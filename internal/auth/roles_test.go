package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"settings_backend/internal/models"
)

func newGate() *RoleGate {
	return NewRoleGate([]string{"officer", "unregistered-officer"}, "citizen")
}

func TestRoleGate_Verify(t *testing.T) {
	t.Parallel()

	gate := newGate()

	tests := []struct {
		name    string
		channel models.Channel
		roles   []string
		want    bool
	}{
		{"гражданин, email", models.ChannelEmail, []string{"citizen"}, true},
		{"гражданин, diia", models.ChannelDiia, []string{"citizen"}, true},
		{"гражданин, inbox", models.ChannelInbox, []string{"citizen"}, true},
		{"офицер, email", models.ChannelEmail, []string{"officer"}, true},
		{"офицер, diia - запрещено", models.ChannelDiia, []string{"officer"}, false},
		{"незарегистрированный офицер, diia - запрещено", models.ChannelDiia, []string{"unregistered-officer"}, false},
		{"смешанные роли с офицерской, diia - запрещено", models.ChannelDiia, []string{"citizen", "officer"}, false},
		{"nil-роли - отказ для любого канала", models.ChannelEmail, nil, false},
		{"пустой список ролей - допуск", models.ChannelEmail, []string{}, true},
		{"неизвестная роль, diia", models.ChannelDiia, []string{"manager"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.Verify(tt.channel, tt.roles))
		})
	}
}

func TestRoleGate_ResolveRealm(t *testing.T) {
	t.Parallel()

	gate := newGate()

	assert.Equal(t, RealmOfficer, gate.ResolveRealm([]string{"officer"}))
	assert.Equal(t, RealmCitizen, gate.ResolveRealm([]string{"citizen"}))
	// Офицерская роль имеет приоритет при смешанном наборе
	assert.Equal(t, RealmOfficer, gate.ResolveRealm([]string{"citizen", "unregistered-officer"}))
	// Роли вне обеих категорий дают пустой realm
	assert.Equal(t, RealmUnknown, gate.ResolveRealm([]string{"manager"}))
	assert.Equal(t, RealmUnknown, gate.ResolveRealm(nil))
}
