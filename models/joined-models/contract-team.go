package joined_models

import (
	"github.com/sigap/sigap-server/models/billing"
	"github.com/sigap/sigap-server/models/userdata"
)

// ContractWithTeam is a team contract loaded together with the owning team.
type ContractWithTeam struct {
	billing.TeamContract `bun:",extend"`

	Team *userdata.Team `bun:"rel:belongs-to,join:team_id=id" json:"team,omitempty"`
}
