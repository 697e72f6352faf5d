package service

import (
	"context"
	"fmt"
	"iter"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/bagdasarian/docspace-access/internal/metrics"
	"github.com/bagdasarian/docspace-access/internal/repository"
)

// Упоминание: @ и затем либо email, либо слова, разделенные одиночными пробелами.
// Email пробуется первым, иначе "@bob@example.com" распался бы на два упоминания.
var mentionPattern = regexp.MustCompile(
	`@([\p{L}\p{N}_.+-]+@[\p{L}\p{N}_-]+(?:\.[\p{L}\p{N}_-]+)+|[\p{L}\p{N}_]+(?: [\p{L}\p{N}_]+)*)`,
)

// ExtractMentions лениво перечисляет упоминания в порядке появления, без удаления дублей.
// @ внутри слова (например, в адресе без @ перед ним) упоминанием не считается.
func ExtractMentions(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		pos := 0
		for pos < len(text) {
			loc := mentionPattern.FindStringSubmatchIndex(text[pos:])
			if loc == nil {
				return
			}
			start := pos + loc[0]
			if start > 0 {
				prev, _ := utf8.DecodeLastRuneInString(text[:start])
				if isWordRune(prev) {
					pos = start + 1
					continue
				}
			}
			pos += loc[1]
			if !yield(text[start+1 : pos]) {
				return
			}
		}
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// MentionResolver сопоставляет упоминания с участниками проекта.
type MentionResolver interface {
	Resolve(ctx context.Context, projectID, authorID string, tokens []string) ([]domain.Principal, error)
}

type mentionResolver struct {
	membershipRepo repository.MembershipRepository
	metrics        *metrics.Metrics
}

// NewMentionResolver создает новый экземпляр MentionResolver
func NewMentionResolver(membershipRepo repository.MembershipRepository, m *metrics.Metrics) MentionResolver {
	return &mentionResolver{
		membershipRepo: membershipRepo,
		metrics:        m,
	}
}

// Resolve возвращает участников проекта, на которых указывает хотя бы одно упоминание.
// Имя сравнивается по вхождению без учета регистра, email - на точное равенство.
// Неоднозначное упоминание дает всех подходящих. Автор в результат не попадает.
func (r *mentionResolver) Resolve(ctx context.Context, projectID, authorID string, tokens []string) ([]domain.Principal, error) {
	distinct := distinctTokens(tokens)
	if len(distinct) == 0 {
		return nil, nil
	}

	members, err := r.membershipRepo.ListMembers(ctx, domain.ScopeProject, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}

	matched := make(map[string]bool)
	for _, token := range distinct {
		for _, id := range matchToken(members, token) {
			matched[id] = true
		}
	}

	var recipients []domain.Principal
	for _, member := range members {
		if !matched[member.UserID] || member.UserID == authorID {
			continue
		}
		// одна строка на пользователя, даже если ListMembers вернул дубли
		delete(matched, member.UserID)
		recipients = append(recipients, member.User)
	}

	r.metrics.MentionsResolved(len(recipients))
	return recipients, nil
}

// distinctTokens убирает пустые и точные повторы. Написания, отличающиеся регистром,
// сохраняются: email сравнивается точно, и "@Bob@Example.com" не заменяет "@bob@example.com".
func distinctTokens(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	var out []string
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		out = append(out, token)
	}
	return out
}

// matchToken ищет участников по упоминанию. Если многословное упоминание не совпало
// ни с кем, пробуются его префиксы от длинного к короткому: в "@Jane Doe and"
// упомянута Jane Doe, а не человек по имени "Jane Doe and".
func matchToken(members []*domain.Member, token string) []string {
	words := strings.Split(token, " ")
	for n := len(words); n > 0; n-- {
		candidate := strings.Join(words[:n], " ")
		if ids := matchCandidate(members, candidate); len(ids) > 0 {
			return ids
		}
	}
	return nil
}

func matchCandidate(members []*domain.Member, candidate string) []string {
	lower := strings.ToLower(candidate)
	var ids []string
	for _, member := range members {
		nameMatch := member.User.Name != "" && strings.Contains(strings.ToLower(member.User.Name), lower)
		if nameMatch || member.User.Email == candidate {
			ids = append(ids, member.UserID)
		}
	}
	return ids
}
