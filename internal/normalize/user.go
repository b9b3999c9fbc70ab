package normalize

import (
	"net/url"
	"strings"

	"github.com/Spok95/lms-dashboard/internal/lms"
	"github.com/Spok95/lms-dashboard/internal/models"
)

const fallbackMailHost = "lms.local"

func SiteInfo(raw lms.SiteInfo) (models.SiteInfo, error) {
	uid, ok := id(raw.Userid)
	if !ok {
		return models.SiteInfo{}, missing("site info", "userid")
	}
	return models.SiteInfo{
		SiteName:       raw.Sitename,
		SiteURL:        raw.Siteurl,
		Username:       raw.Username,
		Firstname:      raw.Firstname,
		Lastname:       raw.Lastname,
		Fullname:       fullname(raw.Fullname, raw.Firstname, raw.Lastname),
		UserID:         uid,
		UserPictureURL: optString(raw.Userpictureurl),
		Lang:           raw.Lang,
	}, nil
}

// User merges the profile record with the site it came from; the site URL
// is only used to synthesize an email when the profile hides it.
func User(raw lms.UserRecord, siteURL string) (models.User, error) {
	uid, ok := id(raw.ID)
	if !ok {
		return models.User{}, missing("user", "id")
	}
	email := strings.TrimSpace(raw.Email)
	if email == "" {
		email = SynthEmail(raw.Username, uid, siteURL)
	}
	return models.User{
		ID:              uid,
		Username:        raw.Username,
		Firstname:       raw.Firstname,
		Lastname:        raw.Lastname,
		Fullname:        fullname(raw.Fullname, raw.Firstname, raw.Lastname),
		Email:           email,
		ProfileImageURL: optString(raw.Profileimageurl),
		Description:     optString(raw.Description),
	}, nil
}

// UserFromSiteInfo is used when the profile lookup returns nothing.
func UserFromSiteInfo(info models.SiteInfo) models.User {
	return models.User{
		ID:              info.UserID,
		Username:        info.Username,
		Firstname:       info.Firstname,
		Lastname:        info.Lastname,
		Fullname:        info.Fullname,
		Email:           SynthEmail(info.Username, info.UserID, info.SiteURL),
		ProfileImageURL: info.UserPictureURL,
	}
}

// SynthEmail builds <username>@<site host>.
func SynthEmail(username, userID, siteURL string) string {
	local := strings.TrimSpace(username)
	if local == "" {
		local = "user" + userID
	}
	host := fallbackMailHost
	if u, err := url.Parse(strings.TrimSpace(siteURL)); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	return local + "@" + host
}

func fullname(full, first, last string) string {
	if f := strings.TrimSpace(full); f != "" {
		return f
	}
	return strings.TrimSpace(first + " " + last)
}
