package schema

const (
	UsersTable            = "users"
	CategoriesTable       = "exercise_categories"
	ExercisesTable        = "exercises"
	PracticeSessionsTable = "practice_sessions"
)

// DefaultUserID owns the shared categories and exercises every user can see
const DefaultUserID int64 = 1

var userFK = ForeignKey{Column: "user_id", RefTable: UsersTable, RefColumn: "user_id"}

// Tables lists the journal tables in dependency order
var Tables = []Table{
	{
		Name: UsersTable,
		Columns: []Column{
			{Name: "user_id", Type: Serial},
			{Name: "email_address", Type: Text, NotNull: true, Unique: true},
			{Name: "password", Type: Text, NotNull: true},
		},
	},
	{
		Name: CategoriesTable,
		Columns: []Column{
			{Name: "category_id", Type: Serial},
			{Name: "user_id", Type: Integer, NotNull: true, Default: "1"},
			{Name: "category_name", Type: Text, NotNull: true},
		},
		ForeignKeys: []ForeignKey{userFK},
	},
	{
		Name: ExercisesTable,
		Columns: []Column{
			{Name: "exercise_id", Type: Serial},
			{Name: "user_id", Type: Integer, NotNull: true},
			{Name: "category_id", Type: Integer, NotNull: true},
			{Name: "name", Type: Text, NotNull: true},
			{Name: "source_url", Type: Text, NotNull: true, Default: "''"},
			{Name: "notes", Type: Text, NotNull: true, Default: "''"},
			{Name: "uom", Type: Text, NotNull: true, Default: "''"},
		},
		ForeignKeys: []ForeignKey{
			userFK,
			{Column: "category_id", RefTable: CategoriesTable, RefColumn: "category_id"},
		},
	},
	{
		Name: PracticeSessionsTable,
		Columns: []Column{
			{Name: "session_id", Type: Serial},
			{Name: "user_id", Type: Integer, NotNull: true},
			{Name: "exercise_id", Type: Integer, NotNull: true},
			{Name: "start_timestamp", Type: Integer, NotNull: true},
			{Name: "end_timestamp", Type: Integer, NotNull: true},
			{Name: "achievement", Type: Real, NotNull: true, Default: "0"},
		},
		ForeignKeys: []ForeignKey{
			userFK,
			{Column: "exercise_id", RefTable: ExercisesTable, RefColumn: "exercise_id"},
		},
	},
}

// TableNames returns the table names in creation order
func TableNames() []string {
	names := make([]string, len(Tables))
	for i, t := range Tables {
		names[i] = t.Name
	}
	return names
}

// DefaultCategories are seeded for the default user on first run
var DefaultCategories = []string{"Scale", "Chord Progression", "Improvisation", "Etude"}
