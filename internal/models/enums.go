package models

import "strings"

// ModName is the closed set of activity module types the UI knows how to render.
type ModName string

const (
	ModAssign     ModName = "assign"
	ModBigBlueBtn ModName = "bigbluebuttonbn"
	ModBook       ModName = "book"
	ModChoice     ModName = "choice"
	ModData       ModName = "data"
	ModFeedback   ModName = "feedback"
	ModFolder     ModName = "folder"
	ModForum      ModName = "forum"
	ModGlossary   ModName = "glossary"
	ModH5P        ModName = "h5pactivity"
	ModIMSCP      ModName = "imscp"
	ModLabel      ModName = "label"
	ModLesson     ModName = "lesson"
	ModLTI        ModName = "lti"
	ModPage       ModName = "page"
	ModQuiz       ModName = "quiz"
	ModResource   ModName = "resource"
	ModSCORM      ModName = "scorm"
	ModURL        ModName = "url"
	ModWiki       ModName = "wiki"
	ModWorkshop   ModName = "workshop"
)

const DefaultModName = ModResource

// ParseModName maps an upstream module name onto the closed set.
// Anything unknown becomes DefaultModName.
func ParseModName(s string) ModName {
	switch m := ModName(strings.ToLower(strings.TrimSpace(s))); m {
	case ModAssign, ModBigBlueBtn, ModBook, ModChoice, ModData, ModFeedback, ModFolder,
		ModForum, ModGlossary, ModH5P, ModIMSCP, ModLabel, ModLesson, ModLTI, ModPage,
		ModQuiz, ModResource, ModSCORM, ModURL, ModWiki, ModWorkshop:
		return m
	default:
		return DefaultModName
	}
}

func (m ModName) Valid() bool { return m != "" && ParseModName(string(m)) == m }

// EventType is the closed set of calendar event scopes.
type EventType string

const (
	EventCourse   EventType = "course"
	EventUser     EventType = "user"
	EventSite     EventType = "site"
	EventGroup    EventType = "group"
	EventCategory EventType = "category"
)

const DefaultEventType = EventCourse

func ParseEventType(s string) EventType {
	switch e := EventType(strings.ToLower(strings.TrimSpace(s))); e {
	case EventCourse, EventUser, EventSite, EventGroup, EventCategory:
		return e
	default:
		return DefaultEventType
	}
}

func (e EventType) Valid() bool { return e != "" && ParseEventType(string(e)) == e }
