package i18n

import "golang.org/x/text/language"

var bundled = Catalog{
	language.Russian: {
		// viewset
		"There is nothing to show.": "Здесь пока ничего нет.",
		"The %s %s has not been found 😱 \nPlease try again from the beginning.": "%s %s не найден 😱 \nПопробуйте начать сначала.",
		"The %s is created! \n\n":                                   "%s создан! \n\n",
		"The field has been updated!\n\n":                           "Поле обновлено!\n\n",
		"The %s #%s is successfully deleted.":                       "%s #%s успешно удален.",
		"Are you sure you want to delete %s #%s?":                   "Точно удалить %s #%s?",
		"Sorry, you do not have permission for this action.":        "Извините, у вас нет прав на это действие.",
		"Please, fill the field %s\n\n":                             "Пожалуйста, заполните поле %s\n\n",
		"Please, write the value for field %s \n\n":                 "Пожалуйста, напишите значение поля %s \n\n",
		"While adding %s the next errors were occurred: %s\n\n":     "При заполнении %s возникли ошибки: %s\n\n",
		"🔄 %s":              "🔄 %s",
		"❌ Delete #%s":       "❌ Удалить #%s",
		"✅ Yes, delete":      "✅ Да, удалить",
		"🔙 Return to list":   "🔙 Вернуться к списку",
		"⬅️ Go back":         "⬅️ Назад",
		"Write the value":    "Написать значение",
		"Next ➡️":            "Далее ➡️",
		"Leave blank":        "Оставить пустым",

		// field validation
		"This field is required.":  "Обязательное поле.",
		"Enter a valid value.":     "Введите корректное значение.",
		"enter a whole number":     "введите целое число",
		"enter a number":           "введите число",
		"enter true or false":      "введите true или false",
		"enter a date as YYYY-MM-DD": "введите дату в формате ГГГГ-ММ-ДД",

		// dispatcher and handlers
		"Something went wrong. Please try again later.": "Что-то пошло не так. Попробуйте позже.",
		"Sorry, I do not know this command.":            "Извините, я не знаю такой команды.",
		"Hello, %s! Use the menu below.":                "Привет, %s! Воспользуйтесь меню ниже.",
		"Welcome back, %s!":                             "С возвращением, %s!",
		"Categories": "Категории",
		"Products":   "Товары",
		"Orders":     "Заказы",
		"Profile":    "Профиль",
		"Menu":       "Меню",
		"No errors logged.": "Ошибок нет.",

		// demo resources
		"Category":    "Категория",
		"Product":     "Товар",
		"Order":       "Заказ",
		"Menu element": "Элемент меню",
		"Name":        "Название",
		"Info":        "Описание",
		"Price":       "Цена",
		"Visible":     "Виден",
		"Status":      "Статус",
		"Hats":        "Шапки",
		"Shoes":       "Обувь",
		"Cloth":       "Одежда",
		"New":         "Новый",
		"Paid":        "Оплачен",
		"Shipped":     "Отправлен",
		"Yes":         "Да",
		"No":          "Нет",
		"Timezone":    "Часовой пояс",
		"Language":    "Язык",
		"Command":     "Команда",
		"Message":     "Сообщение",
		"Callbacks":   "Кнопки",
		"Participant": "Пользователь",
	},
}
