package service

import "testing"

func TestListPeopleKeyNormalizesSearch(t *testing.T) {
	if e, g := ListPeopleKey("ana"), ListPeopleKey("  Ana "); e != g {
		t.Errorf("key: expected '%s', got '%s'", e, g)
	}

	if e, g := "people", ListPeopleKey("").String(); e != g {
		t.Errorf("key.String(): expected '%s', got '%s'", e, g)
	}

	if e, g := "people?search=ana", ListPeopleKey("Ana").String(); e != g {
		t.Errorf("key.String(): expected '%s', got '%s'", e, g)
	}
}

func TestGetPersonKeyIsDistinctFromListKeys(t *testing.T) {
	if ListPeopleKey("p-ana") == GetPersonKey("p-ana") {
		t.Error("detail and list keys must never collide")
	}

	if e, g := "people/p-ana", GetPersonKey("p-ana").String(); e != g {
		t.Errorf("key.String(): expected '%s', got '%s'", e, g)
	}
}

func TestEntryPerson(t *testing.T) {
	empty := Entry{Status: StatusSuccess}

	if _, exists := empty.Person(); exists {
		t.Error("empty.Person(): expected no record")
	}

	failed := Entry{Status: StatusError}

	if _, exists := failed.Person(); exists {
		t.Error("failed.Person(): expected no record")
	}
}
