package lms

import "context"

// Web-service functions consumed by the dashboard.
const (
	FnSiteInfo           = "core_webservice_get_site_info"
	FnUsersByField       = "core_user_get_users_by_field"
	FnUsersCourses       = "core_enrol_get_users_courses"
	FnCategories         = "core_course_get_categories"
	FnCourseContents     = "core_course_get_contents"
	FnCalendarEvents     = "core_calendar_get_calendar_events"
	FnGradeItems         = "gradereport_user_get_grade_items"
	FnUpdateCompletion   = "core_completion_update_activity_completion_status_manually"
	FnPages              = "mod_page_get_pages_by_courses"
	FnBooks              = "mod_book_get_books_by_courses"
	FnResources          = "mod_resource_get_resources_by_courses"
	FnURLs               = "mod_url_get_urls_by_courses"
	FnLabels             = "mod_label_get_labels_by_courses"
	FnFolders            = "mod_folder_get_folders_by_courses"
	FnChoices            = "mod_choice_get_choices_by_courses"
	FnChoiceOptions      = "mod_choice_get_choice_options"
	FnGlossaries         = "mod_glossary_get_glossaries_by_courses"
	FnGlossaryEntries    = "mod_glossary_get_entries_by_letter"
	FnAssignments        = "mod_assign_get_assignments"
	FnAssignSave         = "mod_assign_save_submission"
	FnAssignSubmit       = "mod_assign_submit_for_grading"
	FnForums             = "mod_forum_get_forums_by_courses"
	FnForumDiscussions   = "mod_forum_get_forum_discussions"
	FnForumAddDiscussion = "mod_forum_add_discussion"
	FnForumAddPost       = "mod_forum_add_discussion_post"
	FnQuizzes            = "mod_quiz_get_quizzes_by_courses"
	FnQuizStart          = "mod_quiz_start_attempt"
	FnQuizSave           = "mod_quiz_save_attempt"
	FnQuizProcess        = "mod_quiz_process_attempt"
)

func (c *Client) SiteInfo(ctx context.Context) (SiteInfo, error) {
	return call[SiteInfo](ctx, c, FnSiteInfo, nil)
}

func (c *Client) UserByID(ctx context.Context, userID int64) ([]UserRecord, error) {
	return call[[]UserRecord](ctx, c, FnUsersByField, Params{"field": "id", "values": []int64{userID}})
}

func (c *Client) UsersCourses(ctx context.Context, userID int64) ([]CourseRecord, error) {
	return call[[]CourseRecord](ctx, c, FnUsersCourses, Params{"userid": userID})
}

func (c *Client) Categories(ctx context.Context) ([]CategoryRecord, error) {
	return call[[]CategoryRecord](ctx, c, FnCategories, nil)
}

func (c *Client) CourseContents(ctx context.Context, courseID int64) ([]SectionRecord, error) {
	return call[[]SectionRecord](ctx, c, FnCourseContents, Params{"courseid": courseID})
}

func (c *Client) CalendarEvents(ctx context.Context, courseIDs []int64, from, to int64) ([]EventRecord, error) {
	out, err := call[struct {
		Events []EventRecord `json:"events"`
	}](ctx, c, FnCalendarEvents, Params{
		"events[courseids]":   courseIDs,
		"options[userevents]": true,
		"options[siteevents]": true,
		"options[timestart]":  from,
		"options[timeend]":    to,
	})
	return out.Events, err
}

func (c *Client) GradeItems(ctx context.Context, courseID, userID int64) ([]GradeItemRecord, error) {
	out, err := call[struct {
		Usergrades []struct {
			Gradeitems []GradeItemRecord `json:"gradeitems"`
		} `json:"usergrades"`
	}](ctx, c, FnGradeItems, Params{"courseid": courseID, "userid": userID})
	if err != nil || len(out.Usergrades) == 0 {
		return nil, err
	}
	return out.Usergrades[0].Gradeitems, nil
}

func (c *Client) UpdateCompletion(ctx context.Context, cmid int64, completed bool) (StatusResult, error) {
	return call[StatusResult](ctx, c, FnUpdateCompletion, Params{"cmid": cmid, "completed": completed})
}

func byCourse(courseID int64) Params { return Params{"courseids": []int64{courseID}} }

func (c *Client) Pages(ctx context.Context, courseID int64) ([]PageRecord, error) {
	out, err := call[struct {
		Pages []PageRecord `json:"pages"`
	}](ctx, c, FnPages, byCourse(courseID))
	return out.Pages, err
}

func (c *Client) Books(ctx context.Context, courseID int64) ([]BookRecord, error) {
	out, err := call[struct {
		Books []BookRecord `json:"books"`
	}](ctx, c, FnBooks, byCourse(courseID))
	return out.Books, err
}

func (c *Client) Resources(ctx context.Context, courseID int64) ([]ResourceRecord, error) {
	out, err := call[struct {
		Resources []ResourceRecord `json:"resources"`
	}](ctx, c, FnResources, byCourse(courseID))
	return out.Resources, err
}

func (c *Client) URLs(ctx context.Context, courseID int64) ([]URLRecord, error) {
	out, err := call[struct {
		URLs []URLRecord `json:"urls"`
	}](ctx, c, FnURLs, byCourse(courseID))
	return out.URLs, err
}

func (c *Client) Labels(ctx context.Context, courseID int64) ([]LabelRecord, error) {
	out, err := call[struct {
		Labels []LabelRecord `json:"labels"`
	}](ctx, c, FnLabels, byCourse(courseID))
	return out.Labels, err
}

func (c *Client) Folders(ctx context.Context, courseID int64) ([]FolderRecord, error) {
	out, err := call[struct {
		Folders []FolderRecord `json:"folders"`
	}](ctx, c, FnFolders, byCourse(courseID))
	return out.Folders, err
}

func (c *Client) Choices(ctx context.Context, courseID int64) ([]ChoiceRecord, error) {
	out, err := call[struct {
		Choices []ChoiceRecord `json:"choices"`
	}](ctx, c, FnChoices, byCourse(courseID))
	return out.Choices, err
}

func (c *Client) ChoiceOptions(ctx context.Context, choiceID int64) ([]ChoiceOption, error) {
	out, err := call[struct {
		Options []ChoiceOption `json:"options"`
	}](ctx, c, FnChoiceOptions, Params{"choiceid": choiceID})
	return out.Options, err
}

func (c *Client) Glossaries(ctx context.Context, courseID int64) ([]GlossaryRecord, error) {
	out, err := call[struct {
		Glossaries []GlossaryRecord `json:"glossaries"`
	}](ctx, c, FnGlossaries, byCourse(courseID))
	return out.Glossaries, err
}

func (c *Client) GlossaryEntries(ctx context.Context, glossaryID int64) ([]GlossaryEntry, error) {
	out, err := call[struct {
		Entries []GlossaryEntry `json:"entries"`
	}](ctx, c, FnGlossaryEntries, Params{"id": glossaryID, "letter": "ALL", "from": 0, "limit": 100})
	return out.Entries, err
}

func (c *Client) Assignments(ctx context.Context, courseID int64) ([]AssignRecord, error) {
	out, err := call[struct {
		Courses []struct {
			Assignments []AssignRecord `json:"assignments"`
		} `json:"courses"`
	}](ctx, c, FnAssignments, byCourse(courseID))
	if err != nil || len(out.Courses) == 0 {
		return nil, err
	}
	return out.Courses[0].Assignments, nil
}

// SaveAssignmentText stores online-text submission content as a draft.
func (c *Client) SaveAssignmentText(ctx context.Context, assignID int64, text string) ([]Warning, error) {
	return call[[]Warning](ctx, c, FnAssignSave, Params{
		"assignmentid":                          assignID,
		"plugindata[onlinetext_editor][text]":   text,
		"plugindata[onlinetext_editor][format]": 1,
		"plugindata[onlinetext_editor][itemid]": 0,
	})
}

func (c *Client) SubmitAssignment(ctx context.Context, assignID int64) ([]Warning, error) {
	return call[[]Warning](ctx, c, FnAssignSubmit, Params{"assignmentid": assignID, "acceptsubmissionstatement": true})
}

func (c *Client) Forums(ctx context.Context, courseID int64) ([]ForumRecord, error) {
	return call[[]ForumRecord](ctx, c, FnForums, byCourse(courseID))
}

func (c *Client) ForumDiscussions(ctx context.Context, forumID int64) ([]DiscussionRecord, error) {
	out, err := call[struct {
		Discussions []DiscussionRecord `json:"discussions"`
	}](ctx, c, FnForumDiscussions, Params{"forumid": forumID, "sortorder": -1})
	return out.Discussions, err
}

func (c *Client) AddDiscussion(ctx context.Context, forumID int64, subject, message string) (int64, error) {
	out, err := call[struct {
		Discussionid Int `json:"discussionid"`
	}](ctx, c, FnForumAddDiscussion, Params{"forumid": forumID, "subject": subject, "message": message})
	return int64(out.Discussionid), err
}

func (c *Client) AddPost(ctx context.Context, parentID int64, subject, message string) (int64, error) {
	out, err := call[struct {
		Postid Int `json:"postid"`
	}](ctx, c, FnForumAddPost, Params{"postid": parentID, "subject": subject, "message": message})
	return int64(out.Postid), err
}

func (c *Client) Quizzes(ctx context.Context, courseID int64) ([]QuizRecord, error) {
	out, err := call[struct {
		Quizzes []QuizRecord `json:"quizzes"`
	}](ctx, c, FnQuizzes, byCourse(courseID))
	return out.Quizzes, err
}

func (c *Client) StartAttempt(ctx context.Context, quizID int64) (AttemptRecord, error) {
	out, err := call[struct {
		Attempt AttemptRecord `json:"attempt"`
	}](ctx, c, FnQuizStart, Params{"quizid": quizID})
	return out.Attempt, err
}

// AnswerData is one name/value pair of a quiz attempt page.
type AnswerData struct {
	Name  string
	Value string
}

func answers(data []AnswerData) []map[string]any {
	out := make([]map[string]any, 0, len(data))
	for _, d := range data {
		out = append(out, map[string]any{"name": d.Name, "value": d.Value})
	}
	return out
}

func (c *Client) SaveAttempt(ctx context.Context, attemptID int64, data []AnswerData) (StatusResult, error) {
	return call[StatusResult](ctx, c, FnQuizSave, Params{"attemptid": attemptID, "data": answers(data)})
}

func (c *Client) FinishAttempt(ctx context.Context, attemptID int64, data []AnswerData) (string, error) {
	out, err := call[struct {
		State string `json:"state"`
	}](ctx, c, FnQuizProcess, Params{"attemptid": attemptID, "data": answers(data), "finishattempt": true})
	return out.State, err
}
