package lock

import "testing"

func TestPartyKeys(t *testing.T) {
	t.Run("keys come out sorted", func(t *testing.T) {
		got := PartyKeys([]string{"teacher:t-1", "student:s-x"})

		if len(got) != 2 {
			t.Fatalf("got %d keys, want 2", len(got))
		}
		if got[0] != "party:student:s-x" || got[1] != "party:teacher:t-1" {
			t.Errorf("keys not in sorted order: %v", got)
		}
	})

	t.Run("overlapping party sets share a key", func(t *testing.T) {
		classA := PartyKeys([]string{"teacher:t-1", "student:s-x"})
		classB := PartyKeys([]string{"student:s-y", "teacher:t-1"})

		inA := make(map[string]bool, len(classA))
		for _, k := range classA {
			inA[k] = true
		}

		var common bool
		for _, k := range classB {
			if inA[k] {
				common = true
			}
		}
		if !common {
			t.Errorf("no common key between %v and %v; generates for classes sharing a party must contend", classA, classB)
		}
	})

	t.Run("disjoint party sets do not collide", func(t *testing.T) {
		classA := PartyKeys([]string{"teacher:t-1", "student:s-x"})
		classB := PartyKeys([]string{"teacher:t-2", "student:s-y"})

		inA := make(map[string]bool, len(classA))
		for _, k := range classA {
			inA[k] = true
		}
		for _, k := range classB {
			if inA[k] {
				t.Errorf("unrelated classes share lock key %q", k)
			}
		}
	})
}
