package service

import (
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/repository"
	"lingua_edu_backend/pkg/logger"
)

// ProfileUpdate 档案部分更新，缺省字段保持原值
type ProfileUpdate struct {
	Name              *string            `json:"name"`
	DisplayName       *string            `json:"displayName"`
	Gender            *string            `json:"gender"`
	IsProfileComplete *bool              `json:"isProfileComplete"`
	Preferences       *model.Preferences `json:"preferences"`
}

// StatsView stats 接口的响应体，progress 没有可用主题时为 null
type StatsView struct {
	User     model.UserProfile     `json:"user"`
	Progress *model.ProgressRecord `json:"progress"`
	Badges   []string              `json:"badges"`
}

// UserService 用户档案读写、统计汇总和全量重置
type UserService struct {
	state *repository.StateRepository
}

func NewUserService(state *repository.StateRepository) *UserService {
	return &UserService{state: state}
}

// Profile 当前用户档案
func (s *UserService) Profile() model.UserProfile {
	var user model.UserProfile
	s.state.View(func(st *model.State) {
		user = st.User
	})
	return user
}

// UpdateProfile 合并部分字段并持久化，返回更新后的档案
func (s *UserService) UpdateProfile(upd ProfileUpdate) (model.UserProfile, error) {
	var user model.UserProfile
	err := s.state.Update(func(st *model.State) error {
		if upd.Name != nil {
			st.User.Name = *upd.Name
		}
		if upd.DisplayName != nil {
			st.User.DisplayName = *upd.DisplayName
		}
		if upd.Gender != nil {
			st.User.Gender = *upd.Gender
		}
		if upd.IsProfileComplete != nil {
			st.User.IsProfileComplete = *upd.IsProfileComplete
		}
		if upd.Preferences != nil {
			st.User.Preferences = *upd.Preferences
		}
		user = st.User
		return nil
	})
	if err != nil {
		return model.UserProfile{}, err
	}
	return user, nil
}

// Stats 用户统计。subjectID 为空时取档案中最近使用的主题；
// 仍为空时 progress 为 null
func (s *UserService) Stats(subjectID string) StatsView {
	var view StatsView
	s.state.View(func(st *model.State) {
		view.User = st.User
		view.Badges = append([]string{}, st.User.Badges...)

		if subjectID == "" {
			subjectID = st.User.Preferences.SubjectID
		}
		if subjectID == "" {
			return
		}
		if p, ok := st.Progress[subjectID]; ok {
			clone := *p
			view.Progress = &clone
		} else {
			view.Progress = &model.ProgressRecord{}
		}
	})
	return view
}

// Reset 清空全部用户状态（进度、复习记录、XP、课节、测验）并立即持久化
func (s *UserService) Reset() error {
	if err := s.state.Reset(); err != nil {
		return err
	}
	logger.Log.Info("user state reset to defaults")
	return nil
}
