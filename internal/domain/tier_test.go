package domain

import "testing"

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	// overall is virtual, never stored
	if CategoryOverall.Valid() {
		t.Error("overall must not be a storable category")
	}
	if Category("dance").Valid() {
		t.Error("unknown category must not be valid")
	}
}

func TestGradeOrdering(t *testing.T) {
	ordered := []Grade{GradeSS, GradeS, GradeA, GradeB, GradeC, GradeD, GradeE}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Ordinal() >= ordered[i].Ordinal() {
			t.Fatalf("grade %s should rank above %s", ordered[i-1], ordered[i])
		}
	}

	if Grade("F").Valid() {
		t.Error("unknown grade must not be valid")
	}
	if Grade("F").Ordinal() <= GradeE.Ordinal() {
		t.Error("unknown grade must sort after every known grade")
	}
}

func TestAdminHasPermission(t *testing.T) {
	a := &Admin{CanManagePlayers: true}
	if !a.Has(PermManagePlayers) {
		t.Error("explicit flag should grant the permission")
	}
	if a.Has(PermManageTiers) {
		t.Error("unset flag should not grant the permission")
	}

	super := &Admin{IsSuperAdmin: true}
	all := []Permission{
		PermManagePlayers, PermManageTiers, PermManageAdmins, PermDeleteData,
		PermViewAdmins, PermManageDatabase, PermChangeSettings,
	}
	for _, p := range all {
		if !super.Has(p) {
			t.Errorf("super-admin should hold %s", p)
		}
	}
}
