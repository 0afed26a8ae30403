package viewset

// Messages are the format strings a viewset renders. They are passed
// through the translator with the actor's locale.
type Messages struct {
	NothingToShow string
	NotFound      string // name, id
	Created       string // name
	Updated       string
	Deleted       string // name, id
	ConfirmDelete string // name, id
	Denied        string
	FillField     string // label
	WriteValue    string // label
	FieldErrors   string // label, errors

	ButtonUpdate  string // label
	ButtonDelete  string // id
	ButtonConfirm string
	ButtonList    string
	ButtonGoBack  string
	ButtonWrite   string
	ButtonNext    string
	ButtonBlank   string
}

var DefaultMessages = Messages{
	NothingToShow: "There is nothing to show.",
	NotFound:      "The %s %s has not been found 😱 \nPlease try again from the beginning.",
	Created:       "The %s is created! \n\n",
	Updated:       "The field has been updated!\n\n",
	Deleted:       "The %s #%s is successfully deleted.",
	ConfirmDelete: "Are you sure you want to delete %s #%s?",
	Denied:        "Sorry, you do not have permission for this action.",
	FillField:     "Please, fill the field %s\n\n",
	WriteValue:    "Please, write the value for field %s \n\n",
	FieldErrors:   "While adding %s the next errors were occurred: %s\n\n",

	ButtonUpdate:  "🔄 %s",
	ButtonDelete:  "❌ Delete #%s",
	ButtonConfirm: "✅ Yes, delete",
	ButtonList:    "🔙 Return to list",
	ButtonGoBack:  "⬅️ Go back",
	ButtonWrite:   "Write the value",
	ButtonNext:    "Next ➡️",
	ButtonBlank:   "Leave blank",
}

func (m Messages) withDefaults() Messages {
	d := DefaultMessages
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&d.NothingToShow, m.NothingToShow)
	set(&d.NotFound, m.NotFound)
	set(&d.Created, m.Created)
	set(&d.Updated, m.Updated)
	set(&d.Deleted, m.Deleted)
	set(&d.ConfirmDelete, m.ConfirmDelete)
	set(&d.Denied, m.Denied)
	set(&d.FillField, m.FillField)
	set(&d.WriteValue, m.WriteValue)
	set(&d.FieldErrors, m.FieldErrors)
	set(&d.ButtonUpdate, m.ButtonUpdate)
	set(&d.ButtonDelete, m.ButtonDelete)
	set(&d.ButtonConfirm, m.ButtonConfirm)
	set(&d.ButtonList, m.ButtonList)
	set(&d.ButtonGoBack, m.ButtonGoBack)
	set(&d.ButtonWrite, m.ButtonWrite)
	set(&d.ButtonNext, m.ButtonNext)
	set(&d.ButtonBlank, m.ButtonBlank)
	return d
}
