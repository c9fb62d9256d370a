package decode

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const (
	bulletA = "6e1f5a32-8d0a-4f0e-9c5b-2a9d8f6e4c11"
	bulletB = "0b7c9d4e-3f2a-4b8c-a1d6-5e9f0c3b7a22"
	skillA  = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
	skillB  = "1f2e3d4c-5b6a-4978-8695-a4b3c2d1e0f9"
)

func TestDecodeBulletReorder_Canonical(t *testing.T) {
	text := `{"moves": [
		{"id": "` + bulletA + `", "new_position": 0, "rationale": "leads with impact"},
		{"id": "` + bulletB + `", "new_position": 1}
	]}`

	got, err := DecodeBulletReorder(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &BulletReorder{Moves: []BulletMove{
		{BulletID: bulletA, NewPosition: 0, Rationale: "leads with impact"},
		{BulletID: bulletB, NewPosition: 1},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decoded = %#v, want %#v", got, want)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("canonical result should validate: %v", err)
	}
}

func TestDecodeBulletReorder_AliasFields(t *testing.T) {
	canonical := `{"moves": [{"id": "` + bulletA + `", "new_position": 2, "rationale": "stronger verb"}]}`
	aliased := `{"moves": [{"bullet_id": "` + bulletA + `", "recommended_position": 2, "reason": "stronger verb"}]}`

	a, err := DecodeBulletReorder(canonical)
	if err != nil {
		t.Fatalf("canonical decode failed: %v", err)
	}
	b, err := DecodeBulletReorder(aliased)
	if err != nil {
		t.Fatalf("aliased decode failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("alias decoding diverged:\ncanonical %#v\naliased   %#v", a, b)
	}
}

func TestDecodeBulletReorder_EnvelopeFallback(t *testing.T) {
	wrapped := `{"moves": [{"id": "` + bulletA + `", "new_position": 0}]}`
	bare := `[{"id": "` + bulletA + `", "new_position": 0}]`
	aliasEnvelope := `{"bullets": [{"id": "` + bulletA + `", "new_position": 0}]}`

	a, err := DecodeBulletReorder(wrapped)
	if err != nil {
		t.Fatalf("wrapped decode failed: %v", err)
	}
	b, err := DecodeBulletReorder(bare)
	if err != nil {
		t.Fatalf("bare-array decode failed: %v", err)
	}
	c, err := DecodeBulletReorder(aliasEnvelope)
	if err != nil {
		t.Fatalf("alias-envelope decode failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(a, c) {
		t.Errorf("envelope variants diverged: %#v / %#v / %#v", a, b, c)
	}
}

func TestDecodeBulletReorder_FencedReply(t *testing.T) {
	text := "```json\n[{\"id\": \"" + bulletA + "\", \"new_position\": 0}]\n```"
	got, err := DecodeBulletReorder(text)
	if err != nil {
		t.Fatalf("fenced decode failed: %v", err)
	}
	if len(got.Moves) != 1 {
		t.Errorf("moves = %d, want 1", len(got.Moves))
	}
}

func TestDecodeBulletReorder_MissingRequiredField(t *testing.T) {
	text := `{"moves": [{"id": "` + bulletA + `", "rationale": "no position anywhere"}]}`
	_, err := DecodeBulletReorder(text)
	if err == nil {
		t.Fatal("expected error for missing position")
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	msg := err.Error()
	for _, name := range []string{"new_position", "recommended_position"} {
		if !strings.Contains(msg, name) {
			t.Errorf("error should name every tried candidate, missing %q: %s", name, msg)
		}
	}
}

func TestDecodeBulletReorder_NotJSON(t *testing.T) {
	_, err := DecodeBulletReorder("I could not produce the ordering you asked for.")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError for prose reply, got %v", err)
	}
}

func TestDecodeBulletReorder_FractionalPositionRejected(t *testing.T) {
	text := `{"moves": [{"id": "` + bulletA + `", "new_position": 1.5}]}`
	if _, err := DecodeBulletReorder(text); err == nil {
		t.Fatal("fractional position should not decode as an integer field")
	}
}

func TestBulletReorder_ValidationGate(t *testing.T) {
	cases := []struct {
		name string
		r    BulletReorder
	}{
		{"empty", BulletReorder{}},
		{"bad uuid", BulletReorder{Moves: []BulletMove{{BulletID: "bullet-7", NewPosition: 0}}}},
		{"duplicate id", BulletReorder{Moves: []BulletMove{
			{BulletID: bulletA, NewPosition: 0},
			{BulletID: bulletA, NewPosition: 1},
		}}},
		{"negative position", BulletReorder{Moves: []BulletMove{{BulletID: bulletA, NewPosition: -1}}}},
	}
	for _, tc := range cases {
		err := tc.r.Validate()
		if err == nil {
			t.Errorf("%s: expected validation failure", tc.name)
			continue
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected *ValidationError, got %T", tc.name, err)
		}
	}
}

func TestDecodeSkillMerge_AliasesAndDefaults(t *testing.T) {
	canonical := `{"merged_skills": [
		{"id": "` + skillA + `", "name": "Go", "category": "languages", "absorbed_ids": ["` + skillB + `"]}
	]}`
	aliased := `{"skills": [
		{"skill_id": "` + skillA + `", "skill_name": "Go", "group": "languages", "merged_from": ["` + skillB + `"]}
	]}`

	a, err := DecodeSkillMerge(canonical)
	if err != nil {
		t.Fatalf("canonical decode failed: %v", err)
	}
	b, err := DecodeSkillMerge(aliased)
	if err != nil {
		t.Fatalf("aliased decode failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("alias decoding diverged:\n%#v\n%#v", a, b)
	}

	// Optional fields fall back when absent under every known name.
	bare, err := DecodeSkillMerge(`[{"id": "` + skillA + `", "name": "Go"}]`)
	if err != nil {
		t.Fatalf("bare decode failed: %v", err)
	}
	if bare.Skills[0].Category != "" || bare.Skills[0].Absorbed != nil {
		t.Errorf("optional defaults wrong: %#v", bare.Skills[0])
	}
	if err := bare.Validate(); err != nil {
		t.Errorf("minimal skill should validate: %v", err)
	}
}

func TestSkillMerge_ValidationGate(t *testing.T) {
	cases := []struct {
		name string
		m    SkillMerge
	}{
		{"empty", SkillMerge{}},
		{"bad uuid", SkillMerge{Skills: []MergedSkill{{SkillID: "skill-1", Name: "Go"}}}},
		{"empty name", SkillMerge{Skills: []MergedSkill{{SkillID: skillA, Name: ""}}}},
		{"duplicate", SkillMerge{Skills: []MergedSkill{
			{SkillID: skillA, Name: "Go"},
			{SkillID: skillA, Name: "Golang"},
		}}},
		{"bad absorbed id", SkillMerge{Skills: []MergedSkill{
			{SkillID: skillA, Name: "Go", Absorbed: []string{"not-a-uuid"}},
		}}},
	}
	for _, tc := range cases {
		err := tc.m.Validate()
		if err == nil {
			t.Errorf("%s: expected validation failure", tc.name)
			continue
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected *ValidationError, got %T", tc.name, err)
		}
	}
}

func TestErrorKinds_Distinguishable(t *testing.T) {
	_, decodeErr := DecodeBulletReorder("not json")
	var ve *ValidationError
	if errors.As(decodeErr, &ve) {
		t.Error("decode failure must not satisfy *ValidationError")
	}

	empty := &BulletReorder{}
	valErr := empty.Validate()
	var de *DecodeError
	if errors.As(valErr, &de) {
		t.Error("validation failure must not satisfy *DecodeError")
	}
}
