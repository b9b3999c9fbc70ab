package normalize

import (
	"strings"

	"github.com/Spok95/lms-dashboard/internal/lms"
	"github.com/Spok95/lms-dashboard/internal/models"
)

func header(entity string, cmid, instance *lms.Int, courseID, name, intro string) (models.ModuleHeader, error) {
	mid, ok := id(cmid)
	if !ok {
		return models.ModuleHeader{}, missing(entity, "coursemodule")
	}
	iid, ok := id(instance)
	if !ok {
		return models.ModuleHeader{}, missing(entity, "id")
	}
	return models.ModuleHeader{
		ID:         mid,
		InstanceID: iid,
		CourseID:   courseID,
		Name:       name,
		Intro:      optString(intro),
	}, nil
}

// Files keeps real files (the contents array also carries urls and
// structure entries).
func Files(raw []lms.FileRecord) []models.File {
	out := make([]models.File, 0, len(raw))
	for _, f := range raw {
		if f.Type != "" && f.Type != "file" {
			continue
		}
		if strings.TrimSpace(f.Fileurl) == "" {
			continue
		}
		out = append(out, models.File{
			Filename:     f.Filename,
			URL:          f.Fileurl,
			Size:         max(0, intOr(f.Filesize, 0)),
			MimeType:     optString(f.Mimetype),
			TimeModified: optTime(f.Timemodified),
		})
	}
	return out
}

func Page(raw lms.PageRecord, courseID string) (models.PageDetail, error) {
	h, err := header("page", raw.Coursemodule, raw.ID, courseID, raw.Name, raw.Intro)
	if err != nil {
		return models.PageDetail{}, err
	}
	return models.PageDetail{ModuleHeader: h, Content: raw.Content, TimeModified: optTime(raw.Timemodified)}, nil
}

// Book builds chapters from the module contents: each chapter is an
// index.html entry whose content field carries the title.
func Book(raw lms.BookRecord, courseID string, contents []lms.FileRecord) (models.BookDetail, error) {
	h, err := header("book", raw.Coursemodule, raw.ID, courseID, raw.Name, raw.Intro)
	if err != nil {
		return models.BookDetail{}, err
	}
	chapters := make([]models.BookChapter, 0, len(contents))
	for _, f := range contents {
		if f.Filename != "index.html" {
			continue
		}
		chapters = append(chapters, models.BookChapter{
			ID:    strings.Trim(f.Filepath, "/"),
			Title: f.Content,
			URL:   f.Fileurl,
		})
	}
	return models.BookDetail{ModuleHeader: h, Chapters: chapters}, nil
}

func Resource(raw lms.ResourceRecord, courseID string) (models.ResourceDetail, error) {
	h, err := header("resource", raw.Coursemodule, raw.ID, courseID, raw.Name, raw.Intro)
	if err != nil {
		return models.ResourceDetail{}, err
	}
	return models.ResourceDetail{ModuleHeader: h, Files: Files(raw.Contentfiles)}, nil
}

func URL(raw lms.URLRecord, courseID string) (models.URLDetail, error) {
	h, err := header("url", raw.Coursemodule, raw.ID, courseID, raw.Name, raw.Intro)
	if err != nil {
		return models.URLDetail{}, err
	}
	if strings.TrimSpace(raw.Externalurl) == "" {
		return models.URLDetail{}, missing("url", "externalurl")
	}
	return models.URLDetail{ModuleHeader: h, ExternalURL: strings.TrimSpace(raw.Externalurl)}, nil
}

func Label(raw lms.LabelRecord, courseID string) (models.LabelDetail, error) {
	h, err := header("label", raw.Coursemodule, raw.ID, courseID, raw.Name, "")
	if err != nil {
		return models.LabelDetail{}, err
	}
	return models.LabelDetail{ModuleHeader: h, Content: raw.Intro}, nil
}

func Folder(raw lms.FolderRecord, courseID string, contents []lms.FileRecord) (models.FolderDetail, error) {
	h, err := header("folder", raw.Coursemodule, raw.ID, courseID, raw.Name, raw.Intro)
	if err != nil {
		return models.FolderDetail{}, err
	}
	return models.FolderDetail{ModuleHeader: h, Files: Files(contents)}, nil
}

func Choice(raw lms.ChoiceRecord, courseID string, options []lms.ChoiceOption) (models.ChoiceDetail, error) {
	h, err := header("choice", raw.Coursemodule, raw.ID, courseID, raw.Name, raw.Intro)
	if err != nil {
		return models.ChoiceDetail{}, err
	}
	d := models.ChoiceDetail{
		ModuleHeader: h,
		AllowUpdate:  raw.Allowupdate,
		TimeClose:    optTime(raw.Timeclose),
		Options:      make([]models.ChoiceOption, 0, len(options)),
	}
	for _, o := range options {
		oid, ok := id(o.ID)
		if !ok {
			return models.ChoiceDetail{}, missing("choice option", "id")
		}
		d.Options = append(d.Options, models.ChoiceOption{
			ID:      oid,
			Text:    o.Text,
			Count:   int(max(0, intOr(o.Countanswers, 0))),
			Checked: o.Checked,
		})
	}
	return d, nil
}

func Glossary(raw lms.GlossaryRecord, courseID string, entries []lms.GlossaryEntry) (models.GlossaryDetail, error) {
	h, err := header("glossary", raw.Coursemodule, raw.ID, courseID, raw.Name, raw.Intro)
	if err != nil {
		return models.GlossaryDetail{}, err
	}
	d := models.GlossaryDetail{ModuleHeader: h, Entries: make([]models.GlossaryEntry, 0, len(entries))}
	for _, e := range entries {
		eid, ok := id(e.ID)
		if !ok {
			return models.GlossaryDetail{}, missing("glossary entry", "id")
		}
		d.Entries = append(d.Entries, models.GlossaryEntry{
			ID:          eid,
			Concept:     e.Concept,
			Definition:  e.Definition,
			Author:      optString(e.Userfullname),
			TimeCreated: optTime(e.Timecreated),
		})
	}
	return d, nil
}

func Assignment(raw lms.AssignRecord, courseID string) (models.AssignmentDetail, error) {
	h, err := header("assignment", raw.Cmid, raw.ID, courseID, raw.Name, raw.Intro)
	if err != nil {
		return models.AssignmentDetail{}, err
	}
	d := models.AssignmentDetail{
		ModuleHeader:         h,
		DueDate:              optTime(raw.Duedate),
		AllowSubmissionsFrom: optTime(raw.Allowsubmissionsfromdate),
		CutoffDate:           optTime(raw.Cutoffdate),
	}
	// отрицательная оценка означает id шкалы, а не максимум
	if raw.Grade != nil && *raw.Grade > 0 {
		g := float64(*raw.Grade)
		d.GradeMax = &g
	}
	return d, nil
}

func Forum(raw lms.ForumRecord, courseID string, discussions []lms.DiscussionRecord) (models.ForumDetail, error) {
	h, err := header("forum", raw.Coursemodule, raw.ID, courseID, raw.Name, raw.Intro)
	if err != nil {
		return models.ForumDetail{}, err
	}
	d := models.ForumDetail{ModuleHeader: h, Type: raw.Type, Discussions: make([]models.Discussion, 0, len(discussions))}
	for _, r := range discussions {
		disc := r.Discussion
		if disc == nil {
			disc = r.ID
		}
		did, ok := id(disc)
		if !ok {
			return models.ForumDetail{}, missing("discussion", "id")
		}
		postID, _ := id(r.ID)
		subject := r.Subject
		if subject == "" {
			subject = r.Name
		}
		d.Discussions = append(d.Discussions, models.Discussion{
			ID:           did,
			PostID:       postID,
			Subject:      subject,
			Message:      r.Message,
			Author:       optString(r.Userfullname),
			Created:      optTime(r.Created),
			TimeModified: optTime(r.Timemodified),
			Replies:      int(max(0, intOr(r.Numreplies, 0))),
		})
	}
	return d, nil
}

func Quiz(raw lms.QuizRecord, courseID string) (models.QuizDetail, error) {
	h, err := header("quiz", raw.Coursemodule, raw.ID, courseID, raw.Name, raw.Intro)
	if err != nil {
		return models.QuizDetail{}, err
	}
	d := models.QuizDetail{
		ModuleHeader: h,
		TimeOpen:     optTime(raw.Timeopen),
		TimeClose:    optTime(raw.Timeclose),
		TimeLimit:    optTime(raw.Timelimit),
		Attempts:     int(max(0, intOr(raw.Attempts, 0))),
	}
	if raw.Grade != nil && *raw.Grade > 0 {
		g := float64(*raw.Grade)
		d.GradeMax = &g
	}
	return d, nil
}

func Attempt(raw lms.AttemptRecord) (models.QuizAttempt, error) {
	aid, ok := id(raw.ID)
	if !ok {
		return models.QuizAttempt{}, missing("quiz attempt", "id")
	}
	qid, _ := id(raw.Quiz)
	return models.QuizAttempt{
		ID:         aid,
		QuizID:     qid,
		State:      raw.State,
		TimeStart:  optTime(raw.Timestart),
		TimeFinish: optTime(raw.Timefinish),
	}, nil
}

// Warnings flattens web-service warnings into messages.
func Warnings(raw []lms.Warning) []string {
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		msg := strings.TrimSpace(w.Message)
		if msg == "" {
			msg = w.Warningcode
		}
		out = append(out, msg)
	}
	return out
}
