package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"lab_platform_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImportService(t *testing.T) (*ImportService, *testRepos) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewImportService(repos.lab, repos.student, repos.labStatus, repos.labGrade,
		repos.labProgress, testLogger())
	return svc, repos
}

func writeLabFile(t *testing.T, dir, labID string, def map[string]interface{}) {
	t.Helper()
	def["labId"] = labID
	data, err := json.Marshal(def)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, labID+".json"), data, 0644))
}

func TestImportLabsDefaultLock(t *testing.T) {
	svc, repos := newImportService(t)
	dir := t.TempDir()
	writeLabFile(t, dir, "lab0", map[string]interface{}{"title": "Setup", "order": 0})
	writeLabFile(t, dir, "lab1", map[string]interface{}{"title": "Intro", "order": 1})
	writeLabFile(t, dir, "lab2", map[string]interface{}{"title": "Signals", "order": 2, "locked": false})

	result, err := svc.ImportLabs(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)
	assert.Empty(t, result.Failures)

	// 导入默认只有 lab0 解锁
	lab0, err := repos.lab.FindByID("lab0")
	require.NoError(t, err)
	require.NotNil(t, lab0.Locked)
	assert.False(t, *lab0.Locked)

	lab1, err := repos.lab.FindByID("lab1")
	require.NoError(t, err)
	require.NotNil(t, lab1.Locked)
	assert.True(t, *lab1.Locked)

	// 文件显式给出的锁定值原样落库
	lab2, err := repos.lab.FindByID("lab2")
	require.NoError(t, err)
	require.NotNil(t, lab2.Locked)
	assert.False(t, *lab2.Locked)
}

func TestImportLabsPreservesExistingLock(t *testing.T) {
	svc, repos := newImportService(t)
	require.NoError(t, repos.lab.Save(&model.Lab{LabID: "lab2", Title: "Signals", Order: 2, Locked: boolPtr(false)}))

	dir := t.TempDir()
	writeLabFile(t, dir, "lab2", map[string]interface{}{"title": "Signals v2", "order": 2, "locked": true})

	result, err := svc.ImportLabs(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	lab, err := repos.lab.FindByID("lab2")
	require.NoError(t, err)
	assert.Equal(t, "Signals v2", lab.Title)
	// 已存在的实验保留库内锁定值
	require.NotNil(t, lab.Locked)
	assert.False(t, *lab.Locked)
}

func TestImportStudentsInitializesRecords(t *testing.T) {
	svc, repos := newImportService(t)
	require.NoError(t, repos.lab.Save(&model.Lab{LabID: "lab1", Title: "Intro", Order: 1}))
	require.NoError(t, repos.lab.Save(&model.Lab{LabID: "lab2", Title: "Signals", Order: 2}))
	require.NoError(t, repos.student.Create(&model.Student{Name: "bob", Section: "B"}))

	roster := []map[string]string{
		{"name": "alice", "section": "A"},
		{"name": "bob", "section": "B"},
		{"name": "", "section": "C"},
	}
	data, err := json.Marshal(roster)
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, os.WriteFile(file, data, 0644))

	result, err := svc.ImportStudents(file)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Empty(t, result.Failures)

	student, err := repos.student.FindByName("alice")
	require.NoError(t, err)
	assert.False(t, student.HasAccount)

	status, err := repos.labStatus.Get("alice", "lab1")
	require.NoError(t, err)
	assert.Equal(t, model.LabStatusLocked, status.Status)

	grade, err := repos.labGrade.Get("alice", "lab2")
	require.NoError(t, err)
	assert.Nil(t, grade.Grade)

	for _, part := range []string{"part1", "part2"} {
		progress, err := repos.labProgress.Get("alice", model.ProgressKey("lab2", part))
		require.NoError(t, err)
		assert.Equal(t, model.CheckoffPending, progress.CheckoffType)
		assert.False(t, progress.Completed)
	}
}
