package cli

import (
	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
)

type ListCmd struct {
	All bool `help:"Include archived habits."`
}

func (c *ListCmd) Run(ctx *Context) error {
	habits, err := ctx.Client.Habits(ctx.Ctx)
	if err != nil {
		return err
	}

	shown := 0
	for _, h := range habits {
		if !c.All && !h.IsActive {
			continue
		}
		if shown == 0 {
			ctx.printf("Habits:\n")
		}
		shown++

		status := "active"
		if !h.IsActive {
			status = "archived"
		}
		ctx.printf("  #%d [%s] %s %s (%s, %s, %s)\n",
			h.ID, status, emoji(h), h.DisplayName, h.Category, h.TimeOfDay, describeSchedule(h))
		if h.IsReminderOn {
			ctx.printf("      Reminder: %s\n", h.ReminderTime)
		}
	}

	if shown == 0 {
		ctx.printf("No habits found\n")
	}
	return nil
}

type AddCmd struct {
	Name      string `short:"n" help:"Display name." required:""`
	Icon      string `short:"i" help:"Icon key, e.g. run_icon." required:""`
	Category  string `short:"c" help:"Category (Spiritual|Health|Mind|To Dont List)."`
	Time      string `short:"t" help:"Time of day (Morning|Afternoon|Evening|All Day)."`
	Frequency string `short:"f" help:"Frequency (daily|weekly|custom)." default:"daily"`
	Days      string `short:"d" help:"Comma-separated weekdays for weekly or custom habits."`
	Reminder  string `short:"r" help:"Reminder time (HH:MM). Turns the reminder on."`
	Goal      int    `short:"g" help:"Goal value."`
	Unit      string `short:"u" help:"Goal unit."`
}

func (c *AddCmd) Run(ctx *Context) error {
	data := entity.CreateHabitData{
		DisplayName:   c.Name,
		IconName:      c.Icon,
		Category:      entity.Category(c.Category),
		TimeOfDay:     entity.TimeOfDay(c.Time),
		FrequencyType: entity.FrequencyType(c.Frequency),
		ReminderTime:  c.Reminder,
		IsReminderOn:  c.Reminder != "",
		GoalValue:     c.Goal,
		GoalUnit:      c.Unit,
	}
	if c.Days != "" {
		days, err := parseWeekdays(c.Days)
		if err != nil {
			return err
		}
		data.FrequencyDays = days
	}

	habit, err := ctx.Client.CreateHabit(ctx.Ctx, data)
	if err != nil {
		return err
	}
	ctx.printf("Created habit #%d %s\n", habit.ID, habit.DisplayName)
	return nil
}

type ArchiveCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (c *ArchiveCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	habit, err := ctx.Client.ArchiveHabit(ctx.Ctx, id)
	if err != nil {
		return err
	}
	ctx.printf("Archived habit #%d %s\n", habit.ID, habit.DisplayName)
	return nil
}

type RemoveCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (c *RemoveCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Client.DeleteHabit(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.printf("Removed habit #%d\n", id)
	return nil
}
