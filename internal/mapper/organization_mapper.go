package mapper

import (
	"orgnotes-be/internal/entity"
	"orgnotes-be/internal/model"
)

type OrganizationMapper struct{}

func NewOrganizationMapper() *OrganizationMapper {
	return &OrganizationMapper{}
}

func (m *OrganizationMapper) ToEntity(o *model.Organization) *entity.Organization {
	if o == nil {
		return nil
	}

	return &entity.Organization{
		Id:        o.Id,
		Name:      o.Name,
		OwnerId:   o.OwnerId,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (m *OrganizationMapper) ToModel(o *entity.Organization) *model.Organization {
	if o == nil {
		return nil
	}

	return &model.Organization{
		Id:        o.Id,
		Name:      o.Name,
		OwnerId:   o.OwnerId,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (m *OrganizationMapper) ToEntities(orgs []*model.Organization) []*entity.Organization {
	entities := make([]*entity.Organization, len(orgs))
	for i, o := range orgs {
		entities[i] = m.ToEntity(o)
	}
	return entities
}

func (m *OrganizationMapper) MembershipToEntity(mb *model.Membership) *entity.Membership {
	if mb == nil {
		return nil
	}

	return &entity.Membership{
		Id:        mb.Id,
		OrgId:     mb.OrgId,
		UserId:    mb.UserId,
		Role:      entity.MembershipRole(mb.Role),
		CreatedAt: mb.CreatedAt,
	}
}

func (m *OrganizationMapper) MembershipToModel(mb *entity.Membership) *model.Membership {
	if mb == nil {
		return nil
	}

	return &model.Membership{
		Id:        mb.Id,
		OrgId:     mb.OrgId,
		UserId:    mb.UserId,
		Role:      string(mb.Role),
		CreatedAt: mb.CreatedAt,
	}
}
