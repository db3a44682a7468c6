package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/stemsi/schoolcrm-backend/internal/model"
	"github.com/stemsi/schoolcrm-backend/internal/repository"
)

// ClassInput carries a class create request. Zero MaxStudents and Fee take
// the defaults.
type ClassInput struct {
	Name        string
	Description string
	TeacherID   string
	MaxStudents int
	Students    []string
	Fee         float64
}

// ClassPatch carries a replace-if-present class update.
type ClassPatch struct {
	Name        string
	Description string
	TeacherID   string
	MaxStudents int
	Students    []string
	Fee         float64
}

// ClassService handles class business logic and the teacher join on reads.
type ClassService struct {
	classes repository.ClassRepository
	users   repository.UserRepository
	log     zerolog.Logger
}

// NewClassService creates a new ClassService.
func NewClassService(classes repository.ClassRepository, users repository.UserRepository, log zerolog.Logger) *ClassService {
	return &ClassService{classes: classes, users: users, log: log}
}

// checkTeacher verifies that id names an existing teacher. The result is not
// held across the following write.
func (s *ClassService) checkTeacher(ctx context.Context, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidTeacher
		}
		return err
	}
	if user.Role != model.RoleTeacher {
		return ErrInvalidTeacher
	}
	return nil
}

// Create validates the teacher reference and stores a new class.
func (s *ClassService) Create(ctx context.Context, in ClassInput) (*model.ClassView, error) {
	if err := s.checkTeacher(ctx, in.TeacherID); err != nil {
		return nil, err
	}

	class := &model.Class{
		Name:        in.Name,
		Description: in.Description,
		TeacherID:   in.TeacherID,
		MaxStudents: in.MaxStudents,
		Students:    in.Students,
		Fee:         in.Fee,
	}
	if class.MaxStudents == 0 {
		class.MaxStudents = model.DefaultMaxStudents
	}
	if class.Fee == 0 {
		class.Fee = model.DefaultClassFee
	}
	if class.Students == nil {
		class.Students = []string{}
	}

	if err := s.classes.Create(ctx, class); err != nil {
		return nil, err
	}

	s.log.Info().Str("class_id", class.ID).Str("teacher_id", class.TeacherID).Msg("Class created")
	return s.view(ctx, class)
}

// List returns one page of classes with their teachers inlined.
func (s *ClassService) List(ctx context.Context, params model.ListParams) (model.Page[model.ClassView], error) {
	params = params.Normalize(model.ClassSortFields)

	classes, total, err := s.classes.List(ctx, params)
	if err != nil {
		return model.Page[model.ClassView]{}, err
	}

	views, err := s.views(ctx, classes)
	if err != nil {
		return model.Page[model.ClassView]{}, err
	}

	return model.Page[model.ClassView]{
		Data:        views,
		CurrentPage: params.Page,
		TotalPages:  params.TotalPages(total),
		TotalItems:  total,
	}, nil
}

// Get returns a single class with its teacher inlined.
func (s *ClassService) Get(ctx context.Context, id string) (*model.ClassView, error) {
	class, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, class)
}

// Update applies a replace-if-present patch. A new teacher is validated the
// same way as on create.
func (s *ClassService) Update(ctx context.Context, id string, patch ClassPatch) (*model.ClassView, error) {
	class, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.TeacherID != "" {
		if err := s.checkTeacher(ctx, patch.TeacherID); err != nil {
			return nil, err
		}
		class.TeacherID = patch.TeacherID
	}
	if patch.Name != "" {
		class.Name = patch.Name
	}
	if patch.Description != "" {
		class.Description = patch.Description
	}
	if patch.MaxStudents != 0 {
		class.MaxStudents = patch.MaxStudents
	}
	if len(patch.Students) > 0 {
		class.Students = patch.Students
	}
	if patch.Fee != 0 {
		class.Fee = patch.Fee
	}

	if err := s.classes.Update(ctx, class); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return s.view(ctx, class)
}

// Delete removes a class.
func (s *ClassService) Delete(ctx context.Context, id string) error {
	if err := s.classes.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	s.log.Info().Str("class_id", id).Msg("Class removed")
	return nil
}

func (s *ClassService) get(ctx context.Context, id string) (*model.Class, error) {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return class, nil
}

func (s *ClassService) view(ctx context.Context, class *model.Class) (*model.ClassView, error) {
	views, err := s.views(ctx, []model.Class{*class})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// views resolves every referenced teacher in one lookup and composes the
// read views. A dangling reference yields a nil teacher.
func (s *ClassService) views(ctx context.Context, classes []model.Class) ([]model.ClassView, error) {
	ids := make([]string, 0, len(classes))
	seen := make(map[string]struct{}, len(classes))
	for _, c := range classes {
		if c.TeacherID == "" {
			continue
		}
		if _, ok := seen[c.TeacherID]; ok {
			continue
		}
		seen[c.TeacherID] = struct{}{}
		ids = append(ids, c.TeacherID)
	}

	teachers := make(map[string]*model.User, len(ids))
	if len(ids) > 0 {
		users, err := s.users.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range users {
			teachers[users[i].ID] = &users[i]
		}
	}

	views := make([]model.ClassView, 0, len(classes))
	for i := range classes {
		views = append(views, classes[i].View(teachers[classes[i].TeacherID]))
	}
	return views, nil
}
