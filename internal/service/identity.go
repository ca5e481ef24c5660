package service

import "lecturetrack/internal/model"

// BuildEmailIndex maps each user's email to their store id. Emails are matched
// exactly; a repeated email keeps the last id seen.
func BuildEmailIndex(users []model.User) map[string]string {
	index := make(map[string]string, len(users))
	for _, u := range users {
		index[u.Email] = u.ID
	}
	return index
}

// legacyEmails maps legacy user ids to emails. The first record for an id wins.
func legacyEmails(users []model.LegacyUser) map[model.LegacyID]string {
	emails := make(map[model.LegacyID]string, len(users))
	for _, u := range users {
		if _, seen := emails[u.ID]; !seen {
			emails[u.ID] = u.Email
		}
	}
	return emails
}
