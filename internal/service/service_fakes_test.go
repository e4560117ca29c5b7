package service

import (
	"context"
	"sort"

	"orgnotes-be/internal/entity"
	"orgnotes-be/internal/repository/contract"
	"orgnotes-be/internal/repository/specification"
	"orgnotes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repository fakes. They interpret just the specifications the
// services actually use, so a test failure here means a service changed its
// query shape.

type fakeUserRepo struct {
	users    []*entity.User
	sessions []*entity.UserSession
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	for i, u := range r.users {
		if u.Id == user.Id {
			r.users[i] = user
		}
	}
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.users {
		if matchUser(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CreateSession(ctx context.Context, session *entity.UserSession) error {
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *fakeUserRepo) FindSession(ctx context.Context, specs ...specification.Specification) (*entity.UserSession, error) {
	for _, s := range r.sessions {
		match := true
		for _, spec := range specs {
			switch sp := spec.(type) {
			case specification.ByID:
				if s.Id != sp.ID {
					match = false
				}
			case specification.ByTokenHash:
				if s.TokenHash != sp.TokenHash {
					match = false
				}
			}
		}
		if match {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) RevokeSession(ctx context.Context, id uuid.UUID) error {
	for _, s := range r.sessions {
		if s.Id == id {
			s.Revoked = true
		}
	}
	return nil
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		}
	}
	return true
}

type fakeOrgRepo struct {
	orgs        []*entity.Organization
	memberships *fakeMembershipRepo
	createErr   error
}

func (r *fakeOrgRepo) Create(ctx context.Context, org *entity.Organization) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.orgs = append(r.orgs, org)
	return nil
}

func (r *fakeOrgRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Organization, error) {
	for _, o := range r.orgs {
		for _, spec := range specs {
			if byID, ok := spec.(specification.ByID); ok && o.Id == byID.ID {
				return o, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeOrgRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Organization, error) {
	var result []*entity.Organization
	var memberFilter *specification.MemberOrgs
	ordered := false

	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.MemberOrgs:
			memberFilter = &s
		case specification.OrderBy:
			ordered = true
		}
	}

	for _, o := range r.orgs {
		if memberFilter != nil && !r.memberships.isMember(o.Id, memberFilter.UserID) {
			continue
		}
		result = append(result, o)
	}

	if ordered {
		sort.Slice(result, func(i, j int) bool {
			return result[i].Name < result[j].Name
		})
	}
	return result, nil
}

type fakeMembershipRepo struct {
	memberships []*entity.Membership
	createErr   error
}

func (r *fakeMembershipRepo) Create(ctx context.Context, membership *entity.Membership) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.memberships = append(r.memberships, membership)
	return nil
}

func (r *fakeMembershipRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Membership, error) {
	for _, m := range r.memberships {
		match := true
		for _, spec := range specs {
			if of, ok := spec.(specification.MembershipOf); ok {
				if m.OrgId != of.OrgID || m.UserId != of.UserID {
					match = false
				}
			}
		}
		if match {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMembershipRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	for _, m := range r.memberships {
		match := true
		for _, spec := range specs {
			if byUser, ok := spec.(specification.MembershipUser); ok && m.UserId != byUser.UserID {
				match = false
			}
		}
		if match {
			count++
		}
	}
	return count, nil
}

func (r *fakeMembershipRepo) isMember(orgID, userID uuid.UUID) bool {
	for _, m := range r.memberships {
		if m.OrgId == orgID && m.UserId == userID {
			return true
		}
	}
	return false
}

type fakeNoteRepo struct {
	notes []*entity.Note
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *entity.Note) error {
	r.notes = append(r.notes, note)
	return nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *entity.Note) error {
	for i, n := range r.notes {
		if n.Id == note.Id {
			r.notes[i] = note
		}
	}
	return nil
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, n := range r.notes {
		if n.Id == id {
			r.notes = append(r.notes[:i], r.notes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	for _, n := range r.notes {
		for _, spec := range specs {
			if byID, ok := spec.(specification.ByID); ok && n.Id == byID.ID {
				return n, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var result []*entity.Note
	limit := 0

	for _, spec := range specs {
		if p, ok := spec.(specification.Pagination); ok {
			limit = p.Limit
		}
	}

	for _, n := range r.notes {
		include := true
		for _, spec := range specs {
			if byOrg, ok := spec.(specification.ByOrgID); ok && n.OrgId != byOrg.OrgID {
				include = false
			}
		}
		if include {
			result = append(result, n)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		var ti, tj int64
		if result[i].UpdatedAt != nil {
			ti = result[i].UpdatedAt.UnixNano()
		}
		if result[j].UpdatedAt != nil {
			tj = result[j].UpdatedAt.UnixNano()
		}
		return ti > tj
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.notes)), nil
}

type fakeAttachmentRepo struct {
	attachments []*entity.Attachment
	saveErr     error
}

func (r *fakeAttachmentRepo) Create(ctx context.Context, attachment *entity.Attachment) error {
	return r.Save(ctx, attachment)
}

func (r *fakeAttachmentRepo) Save(ctx context.Context, attachment *entity.Attachment) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	for i, a := range r.attachments {
		if a.Path == attachment.Path {
			r.attachments[i] = attachment
			return nil
		}
	}
	r.attachments = append(r.attachments, attachment)
	return nil
}

func (r *fakeAttachmentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attachment, error) {
	for _, a := range r.attachments {
		for _, spec := range specs {
			if byPath, ok := spec.(specification.ByPath); ok && a.Path == byPath.Path {
				return a, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeAttachmentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attachment, error) {
	var result []*entity.Attachment
	for _, a := range r.attachments {
		include := true
		for _, spec := range specs {
			if byOrg, ok := spec.(specification.ByOrgID); ok && a.OrgId != byOrg.OrgID {
				include = false
			}
		}
		if include {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type fakeUnitOfWork struct {
	users       *fakeUserRepo
	orgs        *fakeOrgRepo
	memberships *fakeMembershipRepo
	notes       *fakeNoteRepo
	attachments *fakeAttachmentRepo
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	memberships := &fakeMembershipRepo{}
	return &fakeUnitOfWork{
		users:       &fakeUserRepo{},
		orgs:        &fakeOrgRepo{memberships: memberships},
		memberships: memberships,
		notes:       &fakeNoteRepo{},
		attachments: &fakeAttachmentRepo{},
	}
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository                 { return u.users }
func (u *fakeUnitOfWork) OrganizationRepository() contract.OrganizationRepository { return u.orgs }
func (u *fakeUnitOfWork) MembershipRepository() contract.MembershipRepository     { return u.memberships }
func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository                 { return u.notes }
func (u *fakeUnitOfWork) AttachmentRepository() contract.AttachmentRepository     { return u.attachments }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeEmailService struct {
	sentTo   []string
	sentLink string
	err      error
}

func (s *fakeEmailService) SendSignInLink(toEmail, link string, ttlMinutes int) error {
	// The link is captured even on failure: a test can then prove that a
	// never-delivered link is not redeemable.
	s.sentLink = link
	if s.err != nil {
		return s.err
	}
	s.sentTo = append(s.sentTo, toEmail)
	return nil
}

type fakePublisher struct {
	published [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.published = append(p.published, payload)
	return nil
}
