package model

import (
	"image"

	"github.com/1broseidon/bmpanel/internal/platform"
)

// AllDesktops is the desktop index of sticky windows.
const AllDesktops = -1

// Releaser is implemented by icons holding resources outside the Go heap
// (server-side pixmaps, for instance).
type Releaser interface {
	Destroy()
}

// Task is a taskbar entry for one managed top-level window.
type Task struct {
	Window    platform.WindowID
	Name      string
	Icon      image.Image
	Desktop   int
	Focused   bool
	Iconified bool
	PosX      int
	Width     int
}

// ShownOn reports whether the task belongs on desktop d.
func (t *Task) ShownOn(d int) bool {
	return t.Desktop == d || t.Desktop == AllDesktops
}

// TaskList keeps tasks sorted by desktop index. Tasks on the same desktop keep
// their arrival order. The shared default icon is never released.
type TaskList struct {
	tasks       []*Task
	byWindow    map[platform.WindowID]*Task
	defaultIcon image.Image
}

// NewTaskList returns an empty list. defaultIcon may be nil.
func NewTaskList(defaultIcon image.Image) *TaskList {
	return &TaskList{
		byWindow:    make(map[platform.WindowID]*Task),
		defaultIcon: defaultIcon,
	}
}

// Insert adds t at its sorted position. It returns false, leaving the list
// untouched, if a task for the same window already exists.
func (l *TaskList) Insert(t *Task) bool {
	if _, ok := l.byWindow[t.Window]; ok {
		return false
	}
	l.byWindow[t.Window] = t
	l.place(t)
	return true
}

func (l *TaskList) place(t *Task) {
	i := len(l.tasks)
	for j, cur := range l.tasks {
		if cur.Desktop > t.Desktop {
			i = j
			break
		}
	}
	l.tasks = append(l.tasks, nil)
	copy(l.tasks[i+1:], l.tasks[i:])
	l.tasks[i] = t
}

func (l *TaskList) unlink(id platform.WindowID) *Task {
	t, ok := l.byWindow[id]
	if !ok {
		return nil
	}
	for i, cur := range l.tasks {
		if cur == t {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			break
		}
	}
	return t
}

// Remove deletes the task for id and releases its icon.
func (l *TaskList) Remove(id platform.WindowID) bool {
	t := l.unlink(id)
	if t == nil {
		return false
	}
	delete(l.byWindow, id)
	l.release(t.Icon)
	t.Icon = nil
	return true
}

// Reassign moves the task for id to another desktop, keeping the order.
func (l *TaskList) Reassign(id platform.WindowID, desktop int) bool {
	t := l.unlink(id)
	if t == nil {
		return false
	}
	t.Desktop = desktop
	l.place(t)
	return true
}

// SetIcon replaces the icon of t, releasing the previous one.
func (l *TaskList) SetIcon(t *Task, icon image.Image) {
	if t.Icon != icon {
		l.release(t.Icon)
	}
	t.Icon = icon
}

func (l *TaskList) release(icon image.Image) {
	if icon == nil || icon == l.defaultIcon {
		return
	}
	if r, ok := icon.(Releaser); ok {
		r.Destroy()
	}
}

// Find returns the task for id, or nil.
func (l *TaskList) Find(id platform.WindowID) *Task {
	return l.byWindow[id]
}

func (l *TaskList) Len() int {
	return len(l.tasks)
}

// All returns the tasks in list order. Callers must not modify the slice.
func (l *TaskList) All() []*Task {
	return l.tasks
}

// OnDesktop returns the tasks shown on desktop d in list order.
func (l *TaskList) OnDesktop(d int) []*Task {
	var out []*Task
	for _, t := range l.tasks {
		if t.ShownOn(d) {
			out = append(out, t)
		}
	}
	return out
}

// Clear removes every task, releasing owned icons.
func (l *TaskList) Clear() {
	for _, t := range l.tasks {
		l.release(t.Icon)
		t.Icon = nil
	}
	l.tasks = nil
	l.byWindow = make(map[platform.WindowID]*Task)
}
