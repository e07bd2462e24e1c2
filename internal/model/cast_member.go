package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const CastMemberNameMaxLength = 255

type CastMemberType int

const (
	CastMemberTypeDirector CastMemberType = 1
	CastMemberTypeActor    CastMemberType = 2
)

func (t CastMemberType) IsValid() bool {
	return t == CastMemberTypeDirector || t == CastMemberTypeActor
}

func (t CastMemberType) String() string {
	switch t {
	case CastMemberTypeDirector:
		return "director"
	case CastMemberTypeActor:
		return "actor"
	}
	return fmt.Sprintf("CastMemberType(%d)", int(t))
}

type CastMember struct {
	ID        uuid.UUID
	Name      string
	Type      CastMemberType
	CreatedAt time.Time
}

func NewCastMember(name string, t CastMemberType) (*CastMember, error) {
	cm := &CastMember{
		ID:        uuid.New(),
		Name:      name,
		Type:      t,
		CreatedAt: Now(),
	}
	if err := cm.Validate(); err != nil {
		return nil, err
	}
	return cm, nil
}

func (cm *CastMember) Update(name string, t CastMemberType) error {
	candidate := *cm
	candidate.Name = name
	candidate.Type = t
	if err := candidate.Validate(); err != nil {
		return err
	}
	*cm = candidate
	return nil
}

func (cm *CastMember) Validate() error {
	var n Notification
	switch {
	case strings.TrimSpace(cm.Name) == "":
		n.Add("name", "should not be empty")
	case len([]rune(cm.Name)) > CastMemberNameMaxLength:
		n.Add("name", fmt.Sprintf("should be less or equal %d characters long", CastMemberNameMaxLength))
	}
	if !cm.Type.IsValid() {
		n.Add("type", fmt.Sprintf("unknown cast member type %d", int(cm.Type)))
	}
	return n.Err()
}
