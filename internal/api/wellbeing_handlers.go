package api

import (
	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/health-mate/internal/services"
)

func (h *handler) getProfile(c *gin.Context) {
	p, err := h.Profiles.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, p)
}

func (h *handler) updateProfile(c *gin.Context) {
	var in services.ProfileInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	p, err := h.Profiles.Update(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, p)
}

func (h *handler) logMood(c *gin.Context) {
	var in services.MoodInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	m, err := h.Moods.Log(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, m)
}

func (h *handler) moodToday(c *gin.Context) {
	m, err := h.Moods.Today(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, m)
}

func (h *handler) moodHistory(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		h.fail(c, err)
		return
	}
	logs, err := h.Moods.History(c.Request.Context(), currentUser(c), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, logs)
}

func (h *handler) deleteMood(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Moods.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}

func (h *handler) createJournal(c *gin.Context) {
	var in services.JournalInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	e, err := h.Journal.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, e)
}

func (h *handler) listJournal(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		h.fail(c, err)
		return
	}
	entries, err := h.Journal.List(c.Request.Context(), currentUser(c), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, entries)
}

func (h *handler) journalStats(c *gin.Context) {
	stats, err := h.Journal.Stats(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, stats)
}

func (h *handler) updateJournal(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in services.JournalInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	e, err := h.Journal.Update(c.Request.Context(), currentUser(c), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, e)
}

func (h *handler) deleteJournal(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Journal.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}

func (h *handler) createHabit(c *gin.Context) {
	var in services.HabitInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	habit, err := h.Habits.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, habit)
}

func (h *handler) listHabits(c *gin.Context) {
	habits, err := h.Habits.List(c.Request.Context(), currentUser(c), queryBool(c, "active"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, habits)
}

func (h *handler) updateHabit(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in services.HabitInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	habit, err := h.Habits.Update(c.Request.Context(), currentUser(c), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, habit)
}

func (h *handler) deleteHabit(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Habits.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}

func (h *handler) toggleHabit(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var body struct {
		Date string `json:"date"`
	}
	if err := bindOptionalJSON(c, &body); err != nil {
		h.fail(c, err)
		return
	}
	done, err := h.Habits.Toggle(c.Request.Context(), currentUser(c), id, body.Date)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, gin.H{"completed": done})
}

func (h *handler) createTodo(c *gin.Context) {
	var in services.TodoInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	todo, err := h.Todos.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, todo)
}

func (h *handler) listTodos(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		h.fail(c, err)
		return
	}
	todos, err := h.Todos.List(c.Request.Context(), currentUser(c), queryBool(c, "pending"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, todos)
}

func (h *handler) updateTodo(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in services.TodoInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	todo, err := h.Todos.Update(c.Request.Context(), currentUser(c), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, todo)
}

func (h *handler) deleteTodo(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Todos.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}

func (h *handler) toggleTodo(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	todo, err := h.Todos.Toggle(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, todo)
}

func (h *handler) createNote(c *gin.Context) {
	var in services.NoteInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	note, err := h.Notes.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, note)
}

func (h *handler) listNotes(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		h.fail(c, err)
		return
	}
	notes, err := h.Notes.List(c.Request.Context(), currentUser(c), c.Query("q"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, notes)
}

func (h *handler) updateNote(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in services.NoteInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	note, err := h.Notes.Update(c.Request.Context(), currentUser(c), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, note)
}

func (h *handler) deleteNote(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Notes.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}

func (h *handler) addWeight(c *gin.Context) {
	var in services.WeightEntryInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	e, err := h.Weight.AddEntry(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, e)
}

func (h *handler) listWeight(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		h.fail(c, err)
		return
	}
	entries, err := h.Weight.ListEntries(c.Request.Context(), currentUser(c), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, entries)
}

func (h *handler) deleteWeight(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Weight.DeleteEntry(c.Request.Context(), currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}

func (h *handler) setWeightGoal(c *gin.Context) {
	var in services.WeightGoalInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	g, err := h.Weight.SetGoal(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, g)
}

func (h *handler) weightProgress(c *gin.Context) {
	p, err := h.Weight.Progress(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, p)
}

func (h *handler) cancelWeightGoal(c *gin.Context) {
	if err := h.Weight.CancelGoal(c.Request.Context(), currentUser(c)); err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}
