package session

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cbuclub/internal/account"
)

// record is the persisted envelope; the layout matches what the web client
// stores under the same key, so both read each other's data.
type record struct {
	State   identity `json:"state"`
	Version int      `json:"version"`
}

type identity struct {
	Name          string  `json:"name"`
	StudentNumber int64   `json:"studentNumber"`
	Email         *string `json:"email"`
	IsAdmin       bool    `json:"isAdmin"`
	Major         string  `json:"major"`
	Grade         string  `json:"grade"`
	NickName      string  `json:"nickName"`
}

func encode(s Session) ([]byte, error) {
	return json.Marshal(record{State: identity{
		Name:          s.Name,
		StudentNumber: s.StudentNumber,
		Email:         s.Email,
		IsAdmin:       s.IsAdmin,
		Major:         s.Major,
		Grade:         s.Grade,
		NickName:      s.NickName,
	}})
}

// decode restores identity fields only. Flags take their Empty values and
// IsAdmin is recomputed rather than trusted.
func decode(b []byte) (Session, error) {
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		return Empty(), fmt.Errorf("decode session: %w", err)
	}
	s := Empty()
	s.Name = r.State.Name
	s.StudentNumber = r.State.StudentNumber
	s.Email = r.State.Email
	s.Major = r.State.Major
	s.Grade = r.State.Grade
	s.NickName = r.State.NickName
	s.IsAdmin = account.IsAdmin(s.Name, s.Email)
	return s, nil
}
