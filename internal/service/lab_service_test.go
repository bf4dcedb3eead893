package service

import (
	"testing"

	"lab_platform_backend/internal/model"
	"lab_platform_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLabService(t *testing.T) (*LabService, *testRepos) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewLabService(repos.lab, repos.labStatus, repos.submission, testLogger())
	return svc, repos
}

func studentClaims(name string) *util.Claims {
	return &util.Claims{Username: name, Role: model.RoleStudent, StudentID: name}
}

func staffClaims(name string) *util.Claims {
	return &util.Claims{Username: name, Role: model.RoleStaff}
}

func TestEffectiveLockedDefaults(t *testing.T) {
	// 未显式设置时只有首实验默认解锁
	lab1 := &model.Lab{LabID: "lab1"}
	assert.False(t, lab1.EffectiveLocked())

	lab2 := &model.Lab{LabID: "lab2"}
	assert.True(t, lab2.EffectiveLocked())

	// 显式标记优先于默认规则
	lab1.Locked = boolPtr(true)
	assert.True(t, lab1.EffectiveLocked())

	lab2.Locked = boolPtr(false)
	assert.False(t, lab2.EffectiveLocked())
}

func TestGetLockedLab(t *testing.T) {
	svc, repos := newLabService(t)
	require.NoError(t, repos.lab.Save(&model.Lab{LabID: "lab3", Title: "Filters", Order: 3}))

	_, err := svc.Get("lab3", false)
	assert.ErrorIs(t, err, util.ErrLabLocked)

	// 教学人员不受锁定限制
	view, err := svc.Get("lab3", true)
	require.NoError(t, err)
	assert.True(t, view.Locked)

	_, err = svc.Get("missing", false)
	assert.ErrorIs(t, err, util.ErrLabNotFound)
}

func TestListMergesStudentCompletion(t *testing.T) {
	svc, repos := newLabService(t)
	require.NoError(t, repos.lab.Save(&model.Lab{LabID: "lab1", Title: "Intro", Order: 1}))
	require.NoError(t, repos.lab.Save(&model.Lab{LabID: "lab2", Title: "Signals", Order: 2}))
	require.NoError(t, repos.labStatus.Put(&model.LabStatus{
		StudentID: "alice", LabID: "lab1", Status: model.LabStatusUnlocked, Completed: true,
	}))

	views, err := svc.List(studentClaims("alice"))
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "lab1", views[0].LabID)
	assert.True(t, views[0].Completed)
	assert.False(t, views[0].Locked)
	// 没有状态记录的按未完成处理
	assert.False(t, views[1].Completed)
	assert.True(t, views[1].Locked)
}

func TestUpdateContentPreservesLockAndCreation(t *testing.T) {
	svc, repos := newLabService(t)
	require.NoError(t, repos.lab.Save(&model.Lab{
		LabID: "lab2", Title: "Signals", Description: "old", Order: 2, Locked: boolPtr(false),
	}))
	created, err := repos.lab.FindByID("lab2")
	require.NoError(t, err)

	view, err := svc.UpdateContent("lab2", &UpdateContentRequest{
		Title:       "Signals v2",
		Description: "new",
		Content:     "updated body",
	})
	require.NoError(t, err)
	assert.Equal(t, "Signals v2", view.Title)
	assert.False(t, view.Locked)

	after, err := repos.lab.FindByID("lab2")
	require.NoError(t, err)
	require.NotNil(t, after.Locked)
	assert.False(t, *after.Locked)
	assert.Equal(t, created.CreatedAt.Unix(), after.CreatedAt.Unix())
}

func TestSetLockedCascades(t *testing.T) {
	svc, repos := newLabService(t)
	require.NoError(t, repos.lab.Save(&model.Lab{LabID: "lab2", Title: "Signals", Order: 2}))
	for _, name := range []string{"alice", "bob"} {
		require.NoError(t, repos.labStatus.Put(&model.LabStatus{
			StudentID: name, LabID: "lab2", Status: model.LabStatusLocked,
		}))
	}

	result, err := svc.SetLocked("lab2", false)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated)
	assert.Empty(t, result.Failures)
	assert.False(t, result.Locked)

	status, err := repos.labStatus.Get("alice", "lab2")
	require.NoError(t, err)
	assert.Equal(t, model.LabStatusUnlocked, status.Status)

	lab, err := repos.lab.FindByID("lab2")
	require.NoError(t, err)
	assert.False(t, lab.EffectiveLocked())

	_, err = svc.SetLocked("missing", true)
	assert.ErrorIs(t, err, util.ErrLabNotFound)
}

func TestSubmitWholeLab(t *testing.T) {
	svc, repos := newLabService(t)
	require.NoError(t, repos.lab.Save(&model.Lab{LabID: "lab1", Title: "Intro", Order: 1}))

	submission, err := svc.Submit("lab1", studentClaims("alice"), &SubmitRequest{FileKey: "lab1/full/alice/demo.mp4"})
	require.NoError(t, err)
	assert.Contains(t, submission.SubmissionID, "alice-lab1-")
	assert.Equal(t, model.SubmissionPending, submission.Status)

	// 状态记录整条替换
	status, err := repos.labStatus.Get("alice", "lab1")
	require.NoError(t, err)
	assert.True(t, status.Completed)
	assert.Equal(t, model.SubmissionPending, status.SubmissionStatus)
	assert.Equal(t, submission.SubmissionID, status.SubmissionID)
}

func TestSubmitLockedLabDenied(t *testing.T) {
	svc, repos := newLabService(t)
	require.NoError(t, repos.lab.Save(&model.Lab{LabID: "lab4", Title: "Sched", Order: 4}))

	_, err := svc.Submit("lab4", studentClaims("alice"), &SubmitRequest{FileKey: "k"})
	assert.ErrorIs(t, err, util.ErrLabLocked)

	// 教学人员可替学生提交
	_, err = svc.Submit("lab4", staffClaims("ta1"), &SubmitRequest{FileKey: "k"})
	require.NoError(t, err)
}
