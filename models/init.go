package models

import (
	"github.com/sigap/sigap-server/models/billing"
	"github.com/sigap/sigap-server/models/rbac"
	"github.com/sigap/sigap-server/models/userdata"
	"github.com/uptrace/bun"
)

func InitModelRegistrations(db *bun.DB) {
	db.RegisterModel((*rbac.Role)(nil))
	db.RegisterModel((*rbac.Menu)(nil))
	db.RegisterModel((*billing.Package)(nil))
	db.RegisterModel((*billing.TeamContract)(nil))
	db.RegisterModel((*userdata.Team)(nil))
	db.RegisterModel((*userdata.Member)(nil))
	db.RegisterModel((*userdata.MemberAdministration)(nil))
	db.RegisterModel((*userdata.MemberRelative)(nil))
	db.RegisterModel((*userdata.ActivityLog)(nil))
}
