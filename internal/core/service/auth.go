package service

import (
	"siggibot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// ChannelAuthorizer restricts commands to allowlisted channels. Platforms without an allowlist are open.
type ChannelAuthorizer struct {
	allowlist map[domain.Platform]map[string]struct{}
}

func NewAuthorizer(allowed map[domain.Platform][]string) *ChannelAuthorizer {
	a := &ChannelAuthorizer{allowlist: make(map[domain.Platform]map[string]struct{})}

	for platform, ids := range allowed {
		if len(ids) == 0 {
			continue
		}

		set := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		a.allowlist[platform] = set
	}

	return a
}

const forbidden = "Siggi isn't allowed to answer here. Ask an admin to allow this channel."

func (a *ChannelAuthorizer) Authorize(inv *domain.Invocation) error {
	set, ok := a.allowlist[inv.Target.Platform]
	if !ok {
		return nil
	}

	if _, ok := set[inv.Target.ChannelID]; ok {
		return nil
	}

	log.Warn().
		Str("platform", string(inv.Target.Platform)).
		Str("channelId", inv.Target.ChannelID).
		Str("userId", inv.Invoker.ID).
		Msg("rejected invocation from channel outside allowlist")

	return domain.NewValidationError(forbidden)
}
